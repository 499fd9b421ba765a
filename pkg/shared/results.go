package shared

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/files"
)

// GenericResult holds the outcome of a single launch.
type GenericResult struct {
	Args    interface{} `json:"args"`
	Result  interface{} `json:"result"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

// GenericLaunchesResult aggregates the outcomes of all launches of a command.
type GenericLaunchesResult struct {
	Launches []GenericResult `json:"launches"`
}

// WriteGenericResult saves the launches result of a command into the results home.
func WriteGenericResult(cfg *config.Config, logger hclog.Logger, result GenericLaunchesResult, commandName string) error {
	resultsHome := config.GetOrtResultsHome(cfg)
	if err := files.CreateFolderIfNotExists(resultsHome); err != nil {
		return err
	}

	fileName := fmt.Sprintf("%s-%s.json", strings.ToLower(commandName), time.Now().UTC().Format("20060102-150405"))
	outputFile := filepath.Join(resultsHome, fileName)

	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal launches result: %w", err)
	}

	if err := files.WriteJsonFile(outputFile, data); err != nil {
		return err
	}

	logger.Info("results saved to file", "path", outputFile)
	return nil
}
