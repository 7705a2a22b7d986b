package repository_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/okian/olympstats/internal/adapters/repository"
	"github.com/okian/olympstats/internal/domain/model"
	"github.com/okian/olympstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func parseCSV(data string, opts ...repository.Option) (model.Graph, error) {
	return repository.Parse(context.Background(), repository.FormatCSV, strings.NewReader(data), opts...)
}

func TestFormatFromPath(t *testing.T) {
	Convey("Given dataset file paths", t, func() {
		Convey("Then .csv should map to CSV regardless of case", func() {
			f, err := repository.FormatFromPath("data/atletas.CSV")
			So(err, ShouldBeNil)
			So(f, ShouldEqual, repository.FormatCSV)
		})

		Convey("Then .yml should map to YAML", func() {
			f, err := repository.FormatFromPath("data.yml")
			So(err, ShouldBeNil)
			So(f, ShouldEqual, repository.FormatYAML)
		})

		Convey("Then unknown extensions should be rejected", func() {
			_, err := repository.FormatFromPath("data.json")
			So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
		})
	})
}

func TestFileSource_Load(t *testing.T) {
	Convey("Given a CSV file with Spanish headers", t, func() {
		g, err := repository.NewFileSource("testdata/athletes.csv").Load(context.Background())

		Convey("Then the graph should be linked", func() {
			So(err, ShouldBeNil)
			So(g.Athletes, ShouldHaveLength, 3)
			So(g.Countries, ShouldHaveLength, 2)
			So(g.Events, ShouldHaveLength, 4)

			ana := g.Athletes["Ana"]
			So(ana, ShouldNotBeNil)
			So(ana.Gender, ShouldEqual, model.Female)
			So(ana.Country, ShouldEqual, "Colombia")
			So(ana.MedalCount(), ShouldEqual, 2)
			So(ana.SportCount(), ShouldEqual, 2)
			So(g.Countries["Kenya"].Athletes, ShouldHaveLength, 2)
		})
	})

	Convey("Given a YAML file", t, func() {
		g, err := repository.NewFileSource("testdata/athletes.yaml").Load(context.Background())

		Convey("Then the participations should be loaded", func() {
			So(err, ShouldBeNil)
			So(g.Athletes, ShouldHaveLength, 3)
			So(g.Events, ShouldHaveLength, 2)
			So(g.Athletes["Faith"].Gender, ShouldEqual, model.Female)
			So(g.Athletes["Faith"].MedalCount(), ShouldEqual, 0)
			So(g.Events[1].Year, ShouldEqual, 2021)
		})
	})

	Convey("Given a missing file", t, func() {
		_, err := repository.NewFileSource("testdata/missing.csv").Load(context.Background())

		Convey("Then the load should fail", func() {
			So(errors.Is(err, repository.ErrLoadDataset), ShouldBeTrue)
		})
	})

	Convey("Given a CSV file read as YAML", t, func() {
		src := repository.NewFileSource("testdata/athletes.csv", repository.WithFormat(repository.FormatYAML))
		_, err := src.Load(context.Background())

		Convey("Then decoding should fail", func() {
			So(errors.Is(err, repository.ErrLoadDataset), ShouldBeTrue)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given English headers with padding and a blank line", t, func() {
		g, err := parseCSV("Athlete, Gender, Country, Sport, Year, Medal\n" +
			"Ana,F,Colombia,Swimming,2021,Gold\n" +
			"\n" +
			"Luis,M,Colombia,Swimming,2021,\n")

		Convey("Then both rows should land in one event", func() {
			So(err, ShouldBeNil)
			So(g.Athletes, ShouldHaveLength, 2)
			So(g.Events, ShouldHaveLength, 1)
			So(g.Events[0].Participations, ShouldHaveLength, 2)
		})
	})

	Convey("Given empty input", t, func() {
		g, err := parseCSV("")

		Convey("Then an empty graph should be returned", func() {
			So(err, ShouldBeNil)
			So(g.Athletes, ShouldBeEmpty)
		})
	})

	Convey("Given a header without a medal column", t, func() {
		_, err := parseCSV("athlete,gender,country,sport,year\nAna,F,Colombia,Swimming,2021\n")

		Convey("Then the missing column should be reported", func() {
			So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		var sb strings.Builder
		sb.WriteString("athlete,gender,country,sport,year,medal\n")
		for i := 1; i <= 3000; i++ {
			fmt.Fprintf(&sb, "Ana,F,Colombia,Swimming,%d,\n", i)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repository.Parse(ctx, repository.FormatCSV, strings.NewReader(sb.String()), repository.WithSkipInvalidRows(true))

		Convey("Then the load should stop with the context error", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestParse_InvalidRows(t *testing.T) {
	Convey("Given a dataset with a conflicting athlete and a bad year", t, func() {
		data := "athlete,gender,country,sport,year,medal\n" +
			"Ana,F,Colombia,Swimming,2021,gold\n" +
			"Ana,F,Peru,Rowing,2021,\n" +
			"Luis,M,Colombia,Swimming,soon,\n" +
			"Luis,M,Colombia,Swimming,2020,silver\n"

		Convey("When loading strictly", func() {
			_, err := parseCSV(data)

			Convey("Then the first bad row should fail the load", func() {
				So(errors.Is(err, repository.ErrInvalidRow), ShouldBeTrue)
				So(errors.Is(err, model.ErrConflictingAthlete), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 3")
			})
		})

		Convey("When skipping invalid rows", func() {
			g, err := parseCSV(data, repository.WithSkipInvalidRows(true))

			Convey("Then only the valid rows should be loaded", func() {
				So(err, ShouldBeNil)
				So(g.Athletes, ShouldHaveLength, 2)
				So(g.Countries, ShouldHaveLength, 1)
				So(g.Athletes["Luis"].MedalCount(), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a dataset with a short row", t, func() {
		data := "athlete,gender,country,sport,year,medal\n" +
			"Ana,F,Colombia,Swimming,2021,gold\n" +
			"Bad,F,Colombia\n" +
			"Luis,M,Colombia,Swimming,2020,silver\n"

		Convey("When loading strictly", func() {
			_, err := parseCSV(data)

			Convey("Then the short row should fail the load", func() {
				So(errors.Is(err, repository.ErrInvalidRow), ShouldBeTrue)
				So(errors.Is(err, repository.ErrShortRow), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 3")
			})
		})

		Convey("When skipping invalid rows", func() {
			g, err := parseCSV(data, repository.WithSkipInvalidRows(true), repository.WithLogger(logger.Get()))

			Convey("Then the rows around it should still load", func() {
				So(err, ShouldBeNil)
				So(g.Athletes, ShouldHaveLength, 2)
				So(g.Athletes, ShouldNotContainKey, "Bad")
			})
		})
	})

	Convey("Given a dataset with a long row", t, func() {
		data := "athlete,gender,country,sport,year,medal\n" +
			"Ana,F,Colombia,Swimming,2021,gold,extra\n"

		Convey("Then the extra field should be ignored", func() {
			g, err := parseCSV(data)
			So(err, ShouldBeNil)
			So(g.Athletes["Ana"].MedalCount(), ShouldEqual, 1)
		})
	})

	Convey("Given a YAML dataset with a malformed entry", t, func() {
		data := "participations:\n" +
			"  - athlete: Ana\n    gender: f\n    country: Colombia\n    sport: Swimming\n    year: 2021\n" +
			"  - [not, a, mapping]\n" +
			"  - athlete: Luis\n    gender: m\n    country: Colombia\n    sport: Swimming\n    year: 2021\n"

		Convey("When skipping invalid rows", func() {
			g, err := repository.Parse(context.Background(), repository.FormatYAML, strings.NewReader(data),
				repository.WithSkipInvalidRows(true))

			Convey("Then the malformed entry should be skipped", func() {
				So(err, ShouldBeNil)
				So(g.Athletes, ShouldHaveLength, 2)
			})
		})

		Convey("When loading strictly", func() {
			_, err := repository.Parse(context.Background(), repository.FormatYAML, strings.NewReader(data))

			Convey("Then the entry should be reported as an invalid row", func() {
				So(errors.Is(err, repository.ErrInvalidRow), ShouldBeTrue)
			})
		})
	})
}
