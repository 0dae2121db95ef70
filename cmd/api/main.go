package main

import (
	"fmt"
	"os"

	"marketmap/cmd"
	"marketmap/internal/logger"
)

func main() {
	fmt.Println(os.Getenv("commit_hash"))
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		logger.Fatal(err)
	}
	err = apiHandler.StartApi(3009)
	if err != nil {
		logger.Fatal(err)
	}
}
