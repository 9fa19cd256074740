package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/farmcred/scoring/internal/domain/model"
)

const (
	minHectares       = 0.5
	maxHectares       = 5.0
	pointsPerCrop     = 2.5
	maxCropPoints     = 7.5
	maxLivestock      = 50
	maxEquipmentValue = 2_000_000
)

func assetsScore(d model.FarmerData) (int, []model.Factor) {
	crops := distinctCrops(d.CropTypes)

	farmSize := normalize(d.Hectares, minHectares, maxHectares) * 0.10
	diversity := math.Min(maxCropPoints, float64(crops)*pointsPerCrop)
	livestock := normalize(float64(d.LivestockCount), 0, maxLivestock) * 0.05
	equipment := normalize(d.EquipmentValue, 0, maxEquipmentValue) * 0.025

	factors := []model.Factor{
		{
			Name:         "farm_size",
			Detail:       fmt.Sprintf("Farm size: %gha", d.Hectares),
			Contribution: farmSize,
			Included:     d.Hectares > 0,
		},
		{
			Name:         "crop_diversity",
			Detail:       fmt.Sprintf("Crop diversity: %d types", crops),
			Contribution: diversity,
			Included:     crops > 0,
		},
		{
			Name:         "livestock",
			Detail:       fmt.Sprintf("Livestock: %d", d.LivestockCount),
			Contribution: livestock,
			Included:     d.LivestockCount > 0,
		},
		{
			Name:         "equipment",
			Detail:       fmt.Sprintf("Equipment value: %.0f", d.EquipmentValue),
			Contribution: equipment,
			Included:     d.EquipmentValue > 0,
		},
	}

	return capAndRound(farmSize+diversity+livestock+equipment, model.AssetsCap), factors
}

// distinctCrops counts crop names case-insensitively, ignoring blanks.
func distinctCrops(crops []string) int {
	seen := make(map[string]struct{}, len(crops))
	for _, c := range crops {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}
