// cmd/chromcheck/main.go
package main

import (
	"chromcheck/internal/appshell"
	"chromcheck/internal/checkapp"
)

func main() {
	appshell.Main(checkapp.RunContext)
}
