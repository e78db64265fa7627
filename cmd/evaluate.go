package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ambuflow/crewmatch/app"
	"github.com/ambuflow/crewmatch/config"
	"github.com/ambuflow/crewmatch/core/model"
	"github.com/ambuflow/crewmatch/infra/logger"
)

var scenarioPath string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run a single evaluation from a scenario file and print the result",
	RunE:  evaluateScenario,
}

func init() {
	evaluateCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "scenario.json", "scenario file with requirement, roster and certification records")
	rootCmd.AddCommand(evaluateCmd)
}

// scenario mirrors the HTTP evaluation payload so the same files work for
// both surfaces.
type scenario struct {
	Requirement model.DispatchRequirement   `json:"requirement"`
	Roster      []model.CrewCandidate       `json:"roster"`
	Records     []model.CertificationRecord `json:"certification_records"`
}

func evaluateScenario(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	var sc scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("parse scenario: %w", err)
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	logg := logger.New("evaluate-command")
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	result, err := svc.Engine.Evaluate(ctx, sc.Requirement, sc.Roster, sc.Records)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
