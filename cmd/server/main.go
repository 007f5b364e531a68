package main

import (
	"time"

	"github.com/Dosada05/pokearena/app"
	"go.uber.org/fx"
)

// @title PokeArena API
// @version 1.0
// @description Arena matchmaking, battles and tournaments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		app.Module,
		fx.StopTimeout(app.ShutdownTimeout+5*time.Second),
	).Run()
}
