package main

import (
	"os"

	"tafsiri.site/backend/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
