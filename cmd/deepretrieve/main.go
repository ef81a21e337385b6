package main

import (
	"github.com/deepretrieve/deepretrieve/cmd/deepretrieve/cmd"
)

func main() {
	cmd.Execute()
}
