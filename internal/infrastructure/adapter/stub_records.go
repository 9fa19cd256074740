package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/farmcred/scoring/internal/domain/port"
)

var (
	_ port.IdentityVerifier   = (*StubRecords)(nil)
	_ port.FarmRecords        = (*StubRecords)(nil)
	_ port.CooperativeRecords = (*StubRecords)(nil)
	_ port.RepaymentLedger    = (*StubRecords)(nil)
	_ port.MarketData         = (*StubRecords)(nil)
)

// regionalYieldAverage stands in for the cooperative benchmark when the farmer
// belongs to none.
const regionalYieldAverage = 2_800

var identityNumberRe = regexp.MustCompile(`^\d{11}$`)

// ValidIdentityNumber reports whether s has the 11-digit NIN/BVN format.
func ValidIdentityNumber(s string) bool {
	return identityNumberRe.MatchString(s)
}

var (
	stubCrops     = []string{"Maize", "Rice", "Cassava", "Sorghum", "Soybeans", "Yam", "Cowpea", "Millet"}
	stubLocations = []struct{ location, state string }{
		{"Funtua", "Katsina"},
		{"Kura", "Kano"},
		{"Makurdi", "Benue"},
		{"Ilorin", "Kwara"},
		{"Zaria", "Kaduna"},
		{"Abakaliki", "Ebonyi"},
	}
)

// StubRecords serves every collaborator port from data derived from a
// SHA-256 of the farmer ID, so a given farmer always gets the same profile.
// It stands in for the farm, cooperative, ledger and market systems until
// they are integrated.
type StubRecords struct{}

func NewStubRecords() *StubRecords {
	return &StubRecords{}
}

type seed [sha256.Size]byte

func seedFor(farmerID uuid.UUID, salt string) seed {
	return sha256.Sum256(append([]byte(salt+":"), farmerID[:]...))
}

func (s seed) uint(i int, n uint32) int {
	return int(binary.BigEndian.Uint32(s[i:i+4]) % n)
}

// IdentityNumbers returns the NIN and BVN on file for the farmer. Roughly one
// farmer in eight has a malformed BVN on record.
func (StubRecords) IdentityNumbers(_ context.Context, farmerID uuid.UUID) (string, string, error) {
	s := seedFor(farmerID, "identity")
	nin := fmt.Sprintf("%011d", binary.BigEndian.Uint64(s[0:8])%100_000_000_000)
	bvn := fmt.Sprintf("%011d", binary.BigEndian.Uint64(s[8:16])%100_000_000_000)
	if s[16]%8 == 0 {
		bvn = bvn[:10]
	}
	return nin, bvn, nil
}

// Verify applies the format check to the numbers on file.
func (r StubRecords) Verify(ctx context.Context, farmerID uuid.UUID) (port.IdentityStatus, error) {
	nin, bvn, err := r.IdentityNumbers(ctx, farmerID)
	if err != nil {
		return port.IdentityStatus{}, err
	}
	return port.IdentityStatus{
		NINVerified: ValidIdentityNumber(nin),
		BVNVerified: ValidIdentityNumber(bvn),
	}, nil
}

func (StubRecords) Assets(_ context.Context, farmerID uuid.UUID) (port.FarmAssets, error) {
	s := seedFor(farmerID, "assets")

	crops := make([]string, 0, 3)
	for i := 0; i <= s.uint(0, 3); i++ {
		crops = append(crops, stubCrops[s.uint(4+i*4, uint32(len(stubCrops)))])
	}

	return port.FarmAssets{
		CropTypes:      crops,
		Hectares:       float64(5+s.uint(16, 96)) / 10,
		EquipmentValue: float64(s.uint(20, 1_500)) * 1_000,
		LivestockCount: s.uint(24, 40),
		HasCollateral:  s[28]%2 == 0,
	}, nil
}

func (StubRecords) Standing(_ context.Context, farmerID uuid.UUID) (port.CooperativeStanding, error) {
	s := seedFor(farmerID, "cooperative")
	if s[0]%5 == 0 {
		return port.CooperativeStanding{YieldAverage: regionalYieldAverage}, nil
	}
	return port.CooperativeStanding{
		Member:              true,
		Rating:              float64(40 + s.uint(4, 61)),
		YieldAverage:        float64(2_500 + s.uint(8, 1_001)),
		PeerRecommendations: s.uint(12, 11),
		LeadershipRoles:     s.uint(16, 4),
		TrainingCompleted:   s.uint(20, 9),
	}, nil
}

func (StubRecords) History(_ context.Context, farmerID uuid.UUID) (port.TrackRecord, error) {
	s := seedFor(farmerID, "history")
	seasons := s.uint(0, 5)

	record := port.TrackRecord{}
	for i := range seasons {
		record.YieldHistory = append(record.YieldHistory, float64(1_800+s.uint(4+i*4, 2_001)))
		if i < seasons-1 {
			record.RepaymentHistory = append(record.RepaymentHistory, float64(50+s.uint(20+i*2, 51)))
		}
	}
	return record, nil
}

func (StubRecords) Outlook(_ context.Context, farmerID uuid.UUID) (port.MarketOutlook, error) {
	s := seedFor(farmerID, "market")
	place := stubLocations[s.uint(0, uint32(len(stubLocations)))]

	base := float64(150 + s.uint(4, 60))
	prices := make([]float64, 4)
	for i := range prices {
		prices[i] = base + float64(s.uint(8+i*4, 30))
	}

	return port.MarketOutlook{
		Location:         place.location,
		State:            place.state,
		MarketPrices:     prices,
		ProjectedRevenue: float64(400+s.uint(24, 1_600)) * 1_000,
		WeatherRisk:      float64(s.uint(28, 71)),
	}, nil
}
