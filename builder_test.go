package adis_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/comalice/adis"
	"github.com/comalice/adis/internal/extensibility"
)

func TestBuilder_BuildsWorkingInstance(t *testing.T) {
	var now int64 = 600
	inst, err := adis.NewBuilder("built").
		Resolution(8).
		ColorDepth(4).
		IterationSpeed(2).
		Seed(11).
		TickSource(extensibility.TickFunc(func() int64 {
			now += 2
			return now
		})).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if inst.ID() != "built" {
		t.Errorf("ID = %q, want %q", inst.ID(), "built")
	}
	if _, err := inst.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
}

func TestBuilder_MatchesDirectConstruction(t *testing.T) {
	built, err := adis.NewBuilder("twin").
		Resolution(8).
		ColorDepth(4).
		IterationSpeed(1).
		Seed(21).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	direct, err := adis.New(adis.Config{
		ID:             "twin",
		Resolution:     8,
		ColorDepth:     4,
		IterationSpeed: 1,
	}, adis.WithSeed(21))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(built.Snapshot(), direct.Snapshot()) {
		t.Error("builder and direct construction disagree")
	}
}

func TestBuilder_InvalidConfig(t *testing.T) {
	_, err := adis.NewBuilder("bad").Resolution(-1).ColorDepth(3).IterationSpeed(1).Build()
	if !errors.Is(err, adis.ErrConfig) {
		t.Errorf("Build error = %v, want ErrConfig", err)
	}
}
