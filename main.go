package main

import "github.com/parcelreg/parcel/cmd"

func main() {
	cmd.Execute()
}
