// Command periodctl resolves and classifies climate reporting periods,
// writes sample generation fixtures, and inspects stored sessions.
//
// Usage:
//
//	periodctl resolve --type 5 --year 2024 --season DJF
//	periodctl classify --type 10 2024-02-01 2024-02-29
//	periodctl previous 6
//	periodctl mock --type 4 --stations BOS,PVD --out data/mock/generation.json
//	periodctl sessions --db data/climate-sessions.db --state transmitting
package main

import "github.com/couchcryptid/climate-report-service/cmd/periodctl/cmd"

func main() {
	cmd.Execute()
}
