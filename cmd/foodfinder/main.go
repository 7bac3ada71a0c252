// foodfinderのエントリポイント。
// レストランと料理のカタログを返す読み取り専用APIサーバーを起動する。
package main

import (
	"os"

	"github.com/nao1215/foodfinder/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
