// course-import lifts a course card (pars and stroke indexes) from a
// published HTML scorecard page and prints it as the JSON settings fragment
// the create-game endpoint accepts, so an organizer doesn't key 36 numbers by
// hand.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mkelwood/fairway-api/internal/importer"
)

func main() {
	file := flag.String("file", "", "path to a saved scorecard HTML page")
	url := flag.String("url", "", "URL of a scorecard page to fetch")
	name := flag.String("name", "", "override the detected course name")
	flag.Parse()

	if (*file == "") == (*url == "") {
		log.Fatal("exactly one of -file or -url is required")
	}

	var card *importer.Scorecard
	var err error

	if *file != "" {
		f, openErr := os.Open(*file)
		if openErr != nil {
			log.Fatalf("failed to open %s: %v", *file, openErr)
		}
		defer f.Close()
		card, err = importer.Parse(f)
	} else {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, fetchErr := client.Get(*url)
		if fetchErr != nil {
			log.Fatalf("failed to fetch %s: %v", *url, fetchErr)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Fatalf("failed to fetch %s: status %d", *url, resp.StatusCode)
		}
		card, err = importer.Parse(resp.Body)
	}

	if err != nil {
		log.Fatalf("failed to parse scorecard: %v", err)
	}
	if *name != "" {
		card.CourseName = *name
	}

	out, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode card: %v", err)
	}
	fmt.Println(string(out))
}
