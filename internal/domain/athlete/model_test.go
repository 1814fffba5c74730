package athlete

import (
	"testing"

	"github.com/riskibarqy/athlete-hub/internal/domain/sport"
)

func TestProfile_ExternalID(t *testing.T) {
	t.Parallel()

	p := Profile{ID: "a1", ExternalIDs: map[sport.Code]int64{sport.NHL: 8478402, sport.NBA: 0}}
	if id, ok := p.ExternalID(sport.NHL); !ok || id != 8478402 {
		t.Fatalf("expected NHL id, got %d %v", id, ok)
	}
	if _, ok := p.ExternalID(sport.NBA); ok {
		t.Fatalf("zero id must count as missing")
	}
	if _, ok := p.ExternalID(sport.MLB); ok {
		t.Fatalf("expected missing MLB id")
	}
	if _, ok := (Profile{ID: "a2"}).ExternalID(sport.NFL); ok {
		t.Fatalf("nil map must report missing")
	}
}

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	code := sport.Code("CFL")
	if err := (Profile{ID: "a1", PrimarySport: &code}).Validate(); err == nil {
		t.Fatalf("expected invalid primary sport error")
	}
	if err := (Profile{ID: "a1", ExternalIDs: map[sport.Code]int64{sport.NBA: -1}}).Validate(); err == nil {
		t.Fatalf("expected invalid external id error")
	}
	nhl := sport.NHL
	if err := (Profile{ID: "a1", PrimarySport: &nhl, ExternalIDs: map[sport.Code]int64{sport.NHL: 1}}).Validate(); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}
}
