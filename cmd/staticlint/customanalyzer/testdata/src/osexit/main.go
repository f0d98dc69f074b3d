package main

import (
	"fmt"
	"os"
)

func exit(code int) {
	os.Exit(code)
}

func main() {
	fmt.Println("starting")
	defer exit(0)
	os.Exit(1) // want "direct os.Exit call in main function of package main"
}
