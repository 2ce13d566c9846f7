package main

import "github.com/snapcal/snapcal/cmd/snapcal"

func main() {
	snapcal.Execute()
}
