package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/olympstats/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

const reportCSV = "nombre,genero,pais,evento,anio,medalla\n" +
	"Ana,F,Colombia,Swimming,2021,oro\n" +
	"Carlos,M,Colombia,Cycling,2021,\n" +
	"Eliud,M,Kenya,Athletics,2021,gold\n" +
	"Eliud,M,Kenya,Swimming,2016,silver\n"

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atletas.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runRoot(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		root := newRootCmd()

		convey.Convey("Then it should expose serve and report", func() {
			names := []string{}
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			convey.So(names, convey.ShouldContain, "serve")
			convey.So(names, convey.ShouldContain, "report")
		})

		convey.Convey("And it should define the persistent flags", func() {
			convey.So(root.PersistentFlags().Lookup("config"), convey.ShouldNotBeNil)
			convey.So(root.PersistentFlags().Lookup("data"), convey.ShouldNotBeNil)
		})
	})
}

func TestReportCommand(t *testing.T) {
	convey.Convey("Given a dataset file", t, func() {
		path := writeDataset(t, reportCSV)

		convey.Convey("When running the report command", func() {
			out, _, err := runRoot("report", "--data", path)

			convey.Convey("Then it should print the headline statistics", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Dataset: 3 athletes, 2 countries, 4 events, 4 participations")
				convey.So(out, convey.ShouldContainSubstring, "Countries with most medalists:\n  Colombia\t1\n  Kenya\t1\n")
				convey.So(out, convey.ShouldContainSubstring, "Star athletes:\n  Eliud\t2\n")
				convey.So(out, convey.ShouldContainSubstring, "All-terrain athlete: Eliud (2 sports)")
				convey.So(out, convey.ShouldContainSubstring, "Medalist percentage: 66.67%")
			})
		})

		convey.Convey("When the config file sets the data path", func() {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(cfgPath, []byte("data_path: "+path+"\nlog_format: json\n"), 0o600), convey.ShouldBeNil)
			out, _, err := runRoot("report", "--config", cfgPath)

			convey.Convey("Then the report should use it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Dataset: 3 athletes")
			})
		})
	})

	convey.Convey("Given a header-only dataset", t, func() {
		path := writeDataset(t, "athlete,gender,country,sport,year,medal\n")

		convey.Convey("Then the report should degrade gracefully", func() {
			out, _, err := runRoot("report", "--data", path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "All-terrain athlete: none")
			convey.So(out, convey.ShouldContainSubstring, "Medalist percentage: n/a")
		})
	})

	convey.Convey("Given a missing dataset file", t, func() {
		convey.Convey("Then the report should fail", func() {
			_, _, err := runRoot("report", "--data", filepath.Join(t.TempDir(), "missing.csv"))
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestMetricsConfiguration(t *testing.T) {
	convey.Convey("Given metrics settings in the environment", t, func() {
		path := writeDataset(t, reportCSV)
		_ = os.Setenv("OLYMPSTATS_METRICS_NAMESPACE", "games")
		_ = os.Setenv("OLYMPSTATS_METRICS_REFRESH_INTERVAL", "2s")
		defer func() {
			_ = os.Unsetenv("OLYMPSTATS_METRICS_NAMESPACE")
			_ = os.Unsetenv("OLYMPSTATS_METRICS_REFRESH_INTERVAL")
			metrics.Configure()
		}()

		convey.Convey("When running a command", func() {
			_, _, err := runRoot("report", "--data", path)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the metrics manager should be built from them", func() {
				convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 2*time.Second)

				families, gerr := metrics.GetRegistry().Gather()
				convey.So(gerr, convey.ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				convey.So(names, convey.ShouldContain, "games_stats_queries_total")
			})
		})
	})
}

func TestServeCommand(t *testing.T) {
	convey.Convey("Given a dataset and a free address", t, func() {
		path := writeDataset(t, reportCSV)
		_ = os.Setenv("OLYMPSTATS_ADDR", "127.0.0.1:0")
		defer func() { _ = os.Unsetenv("OLYMPSTATS_ADDR") }()

		convey.Convey("When the serve context is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			root := newRootCmd()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs([]string{"serve", "--data", path})
			err := root.ExecuteContext(ctx)

			convey.Convey("Then it should shut down cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.Convey("Then it should stop when the context is done", func() {
				done := make(chan struct{})
				go func() {
					startSystemMetricsUpdater(ctx, 10*time.Millisecond)
					close(done)
				}()
				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("metrics updater did not stop")
				}
			})

			convey.Convey("And a single update should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
				convey.So(metrics.GetRegistry(), convey.ShouldNotBeNil)
			})
		})
	})
}
