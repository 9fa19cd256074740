package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/farmcred/scoring/internal/application/dto"
	"github.com/farmcred/scoring/internal/domain/model"
	"github.com/farmcred/scoring/internal/domain/service"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newScoreCmd() *cobra.Command {
	var (
		file   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a farmer profile read from a JSON file",
		Example: "  farmscore example > profile.json\n" +
			"  farmscore score --file profile.json\n" +
			"  cat profile.json | farmscore score --file - --format json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatJSON {
				return fmt.Errorf("unsupported format %q: use %s or %s", format, formatText, formatJSON)
			}

			profile, err := readProfile(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			if err := profile.Validate(); err != nil {
				return err
			}

			result, err := service.ComputeCreditScore(profile)
			if err != nil {
				return fmt.Errorf("failed to score profile: %w", err)
			}

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(dto.FromResult(result))
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `profile JSON file, or "-" for stdin`)
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a sample farmer profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(exampleProfile())
		},
	}
}

func readProfile(stdin io.Reader, path string) (model.FarmerData, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return model.FarmerData{}, fmt.Errorf("failed to open profile: %w", err)
		}
		defer f.Close()
		r = f
	}

	var profile model.FarmerData
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&profile); err != nil {
		return model.FarmerData{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func printResult(w io.Writer, result model.CreditScoreResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Credit score:       %d/100\n", result.Score)
	fmt.Fprintf(&b, "Risk band:          %s\n", result.RiskBand.DisplayName())
	fmt.Fprintf(&b, "Interest rate:      %.0f%%\n", result.InterestRate)
	fmt.Fprintf(&b, "Recommended amount: %d\n", result.RecommendedLoanAmount)

	subscores := map[model.SubscoreKey]int{
		model.KeyIdentity: result.Subscores.Identity,
		model.KeyAssets:   result.Subscores.Assets,
		model.KeyHistory:  result.Subscores.History,
		model.KeyTrust:    result.Subscores.Trust,
		model.KeyCapacity: result.Subscores.Capacity,
	}
	rendered := result.Explanation.Render()

	b.WriteString("\nBreakdown:\n")
	for _, key := range model.SubscoreKeys {
		fmt.Fprintf(&b, "  %-12s %3d  %s\n", key, subscores[key], rendered[key])
	}

	if result.RiskBand.RequiresTraining() {
		b.WriteString("\nFinancial literacy training is recommended before disbursement.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func exampleProfile() model.FarmerData {
	return model.FarmerData{
		Location:            "Funtua",
		State:               "Katsina",
		NINVerified:         true,
		BVNVerified:         true,
		HasCollateral:       true,
		CooperativeMember:   true,
		Hectares:            2.5,
		CropTypes:           []string{"Maize", "Soybeans"},
		LivestockCount:      15,
		EquipmentValue:      800000,
		YieldHistory:        []float64{2800, 3200, 2950},
		RepaymentHistory:    []float64{95, 88, 92},
		CooperativeYieldAvg: 3000,
		CooperativeRating:   85,
		PeerRecommendations: 7,
		LeadershipRoles:     2,
		TrainingCompleted:   5,
		ProjectedRevenue:    1200000,
		LoanAmount:          400000,
		MarketPrices:        []float64{180, 195, 175, 188},
		WeatherRisk:         25,
	}
}
