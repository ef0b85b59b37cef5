package main

import "github.com/jacostamo01/CalculadoraNoviembre01/internal/app"

func main() {
	app.Run()
}
