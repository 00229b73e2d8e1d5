package main

import "github.com/pkgstage/pkgstage/cmd/pkgstage/internal"

func main() {
	internal.Execute()
}
