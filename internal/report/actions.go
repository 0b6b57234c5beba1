// Package report prints the migration ledger history.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Corrado-von-Planta/TGV-Website/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func Action(c *cli.Context) error {
	ledger, err := db.Open(c.String("ledger"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open ledger: %v\n", err)
		os.Exit(2)
	}
	defer ledger.Close()

	var payload interface{}
	if c.IsSet("run") {
		records, err := ledger.ListDownloads(int64(c.Int("run")))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		if len(records) == 0 {
			fmt.Printf("Run %d has no recorded downloads\n", c.Int("run"))
			return nil
		}
		payload = map[string]interface{}{"downloads": records}
	} else {
		runs, err := ledger.ListRuns(c.Int("limit"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		if len(runs) == 0 {
			fmt.Println("No migration runs recorded yet")
			return nil
		}
		payload = map[string]interface{}{"runs": runs}
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "json" {
		outputData, marshalErr = json.MarshalIndent(payload, "", "  ")
	} else {
		outputData, marshalErr = yaml.Marshal(payload)
	}
	if marshalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	return nil
}
