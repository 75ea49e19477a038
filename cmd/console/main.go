package main

import "github.com/modan/fas/internal/console"

func main() {
	console.Execute()
}
