package stat

import "testing"

func TestKey_Matches(t *testing.T) {
	t.Parallel()

	base := Key{AthleteID: "a1", Name: "Goals", Season: Season("2024")}
	if !base.Matches(Key{AthleteID: "a1", Name: "Goals", Season: Season("2024")}) {
		t.Fatalf("expected equal keys to match")
	}
	if base.Matches(Key{AthleteID: "a1", Name: "Goals", Season: Season("2023")}) {
		t.Fatalf("different seasons must not match")
	}
	if base.Matches(Key{AthleteID: "a1", Name: "Goals"}) {
		t.Fatalf("nil season must not match a set season")
	}
	if !(Key{AthleteID: "a1", Name: "Goals"}).Matches(Key{AthleteID: "a1", Name: "Goals"}) {
		t.Fatalf("two nil seasons must match")
	}
}

func TestSeason(t *testing.T) {
	t.Parallel()

	if Season("  ") != nil {
		t.Fatalf("blank season must be nil")
	}
	if got := SeasonString(Season(" 2024 ")); got != "2024" {
		t.Fatalf("unexpected season %q", got)
	}
}

func TestAthleteStat_Validate(t *testing.T) {
	t.Parallel()

	if err := (AthleteStat{ID: "s1", AthleteID: "a1", Name: "Goals", Value: "30"}).Validate(); err != nil {
		t.Fatalf("expected valid stat, got %v", err)
	}
	if err := (AthleteStat{ID: "s1", AthleteID: "a1"}).Validate(); err == nil {
		t.Fatalf("expected missing name error")
	}
	if err := (GameStat{AthleteID: "a1", Name: "pts"}).Validate(); err == nil {
		t.Fatalf("expected missing game id error")
	}
}
