package main

import (
	"os"

	hearthcmder "github.com/hearthhq/hearth/cmd/hearth"
)

func main() {
	cmd := hearthcmder.NewHearthCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
