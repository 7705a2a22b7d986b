package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/olympstats/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func mustAdd(b *model.Builder, r model.Row) {
	if _, err := b.Add(r); err != nil {
		panic(err)
	}
}

func TestParsers(t *testing.T) {
	convey.Convey("Given gender and medal parsers", t, func() {
		convey.Convey("When parsing known genders", func() {
			m, errM := model.ParseGender(" M ")
			f, errF := model.ParseGender("Female")

			convey.Convey("Then they should map to the constants", func() {
				convey.So(errM, convey.ShouldBeNil)
				convey.So(errF, convey.ShouldBeNil)
				convey.So(m, convey.ShouldEqual, model.Male)
				convey.So(f, convey.ShouldEqual, model.Female)
			})
		})

		convey.Convey("When parsing an unknown gender", func() {
			_, err := model.ParseGender("x")

			convey.Convey("Then it should fail as an invalid entity", func() {
				convey.So(errors.Is(err, model.ErrInvalidEntity), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When parsing medals", func() {
			gold, _ := model.ParseMedal("GOLD")
			none, _ := model.ParseMedal("NA")
			empty, _ := model.ParseMedal("")
			_, err := model.ParseMedal("platinum")

			convey.Convey("Then known values parse and unknown ones fail", func() {
				convey.So(gold, convey.ShouldEqual, model.Gold)
				convey.So(none.Won(), convey.ShouldBeFalse)
				convey.So(empty, convey.ShouldEqual, model.MedalNone)
				convey.So(errors.Is(err, model.ErrInvalidEntity), convey.ShouldBeTrue)
			})
		})
	})
}

func TestTally(t *testing.T) {
	convey.Convey("Given two tallies", t, func() {
		a := model.Tally{Gold: 1, Silver: 0, Bronze: 5}
		b := model.Tally{Gold: 1, Silver: 1, Bronze: 0}

		convey.Convey("Then silver breaks the gold tie", func() {
			convey.So(a.Compare(b), convey.ShouldEqual, -1)
			convey.So(b.Compare(a), convey.ShouldEqual, 1)
			convey.So(a.Compare(a), convey.ShouldEqual, 0)
			convey.So(a.Total(), convey.ShouldEqual, 6)
		})
	})
}

func TestBuilder(t *testing.T) {
	convey.Convey("Given a builder", t, func() {
		b := model.NewBuilder()
		mustAdd(b, model.Row{Athlete: "Ana", Gender: model.Female, Country: "Colombia", Sport: "Swimming", Year: 2021, Medal: model.Gold})
		mustAdd(b, model.Row{Athlete: "Ana", Gender: model.Female, Country: "Colombia", Sport: "Swimming", Year: 2020, Medal: model.Bronze})
		mustAdd(b, model.Row{Athlete: "Ana", Gender: model.Female, Country: "Colombia", Sport: "Diving", Year: 2020})
		mustAdd(b, model.Row{Athlete: "Luis", Gender: model.Male, Country: "Colombia", Sport: "Swimming", Year: 2021})

		convey.Convey("When building the graph", func() {
			g := b.Build()

			convey.Convey("Then entities should be linked both ways", func() {
				convey.So(g.Athletes, convey.ShouldHaveLength, 2)
				convey.So(g.Countries, convey.ShouldHaveLength, 1)
				convey.So(g.Events, convey.ShouldHaveLength, 3)
				convey.So(g.Events[0].Key(), convey.ShouldResemble, model.EventKey{Sport: "Swimming", Year: 2021})
				convey.So(g.Countries["Colombia"].Athletes, convey.ShouldHaveLength, 2)
				convey.So(g.Events[0].Athletes(), convey.ShouldHaveLength, 2)
				convey.So(g.Events[0].Medalists(), convey.ShouldHaveLength, 1)
			})

			convey.Convey("And derived athlete values should be computed", func() {
				ana := g.Athletes["Ana"]
				convey.So(ana.MedalCount(), convey.ShouldEqual, 2)
				convey.So(ana.SportCount(), convey.ShouldEqual, 2)
				convey.So(ana.IsMedalist(), convey.ShouldBeTrue)
				convey.So(ana.MedalsInRange(2020, 2021), convey.ShouldHaveLength, 2)
				convey.So(ana.MedalsInRange(2022, 2023), convey.ShouldNotBeNil)
				convey.So(ana.MedalsInRange(2022, 2023), convey.ShouldBeEmpty)
			})

			convey.Convey("And derived country values should be computed", func() {
				col := g.Countries["Colombia"]
				convey.So(col.MedalistCount(), convey.ShouldEqual, 1)
				convey.So(col.MedalTally("Swimming"), convey.ShouldResemble, model.Tally{Gold: 1, Bronze: 1})
				convey.So(col.MedalTally("Fencing"), convey.ShouldResemble, model.Tally{})
				convey.So(col.MedalistsByGender(model.Female)["Ana"], convey.ShouldHaveLength, 2)
				convey.So(col.MedalistsByGender(model.Male), convey.ShouldBeEmpty)
				convey.So(col.ParticipationRecords(), convey.ShouldHaveLength, 4)
			})
		})

		convey.Convey("When the same athlete enters the same event twice", func() {
			_, err := b.Add(model.Row{Athlete: "Ana", Gender: model.Female, Country: "Colombia", Sport: "Swimming", Year: 2021})

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, model.ErrDuplicateParticipation), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When an athlete changes country", func() {
			_, err := b.Add(model.Row{Athlete: "Ana", Gender: model.Female, Country: "Peru", Sport: "Rowing", Year: 2021})

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, model.ErrConflictingAthlete), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a row is missing fields", func() {
			_, errName := b.Add(model.Row{Gender: model.Male, Country: "Peru", Sport: "Rowing", Year: 2021})
			_, errYear := b.Add(model.Row{Athlete: "Eva", Gender: model.Female, Country: "Peru", Sport: "Rowing"})

			convey.Convey("Then it should be rejected as invalid", func() {
				convey.So(errors.Is(errName, model.ErrInvalidEntity), convey.ShouldBeTrue)
				convey.So(errors.Is(errYear, model.ErrInvalidEntity), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When adding an athlete without participations", func() {
			a, err := b.AddAthlete("Sol", model.Female, "Peru")

			convey.Convey("Then the athlete counts zero sports and medals", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(a.SportCount(), convey.ShouldEqual, 0)
				convey.So(a.MedalCount(), convey.ShouldEqual, 0)
				convey.So(b.Build().Countries["Peru"].Athletes, convey.ShouldHaveLength, 1)
			})
		})
	})
}
