// tempann annotates natural-language text with TimeML temporal/event spans:
// it encodes gold corpora into training matrices and renders per-token
// classifier predictions back into annotated documents.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
