package main

import "questrank/cmd/qr/root"

func main() {
	root.Execute()
}
