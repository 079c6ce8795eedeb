package main

import (
	"github.com/podlink/podlink/cmd/podlink/internal"
)

func main() {
	internal.Execute()
}
