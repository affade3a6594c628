package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"

	"runefall-server/internal/agent"
	"runefall-server/internal/domain"
	"runefall-server/internal/engine"
	"runefall-server/internal/network"
	"runefall-server/internal/server"
	"runefall-server/internal/version"
	"runefall-server/pkg/api"
	"runefall-server/pkg/gamedata"
	"runefall-server/pkg/logger"
)

func init() {
	logger.Init()
}

// buildArena создает демонстрационную карту: открытое поле с рамкой стен
// и парой внутренних перегородок, чтобы обходу препятствий было что обходить.
func buildArena() *domain.TileMap {
	world := domain.NewTileMap(40, 40)

	for x := 0; x < 40; x++ {
		world.SetWall(x, 0)
		world.SetWall(x, 39)
	}
	for y := 0; y < 40; y++ {
		world.SetWall(0, y)
		world.SetWall(39, y)
	}

	// Внутренние перегородки
	for y := 10; y < 25; y++ {
		world.SetWall(15, y)
	}
	for x := 20; x < 32; x++ {
		world.SetWall(x, 28)
	}

	return world
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var tickMs int
	var profileMode string
	flag.Int64Var(&seed, "seed", 0, "Initial world seed (0 for random)")
	flag.IntVar(&tickMs, "tick", 100, "Simulation tick length in milliseconds")
	flag.StringVar(&profileMode, "profile", "", "Enable profiling: cpu or mem")
	flag.Parse()

	switch profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	logger.Log.Info("Starting Runefall...")
	logger.Log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("Using explicit master seed: %d", seed)
	} else {
		logger.Log.Infof("Using random master seed: %d", cfg.Seed)
	}

	port := os.Getenv("RF_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	data := gamedata.Default()
	sim := engine.NewSimulation(cfg, buildArena(), data)

	sim.CreatePlayer("Hero", domain.Vec2{X: 5.5, Y: 5.5},
		&engine.GearSet{
			AttackBonuses: map[string]int{domain.DefaultDamageStyle: 10},
			Strength:      8,
		},
		engine.NewBagInventory(28),
	)

	spawns := []struct {
		typeID string
		pos    domain.Vec2
	}{
		{"goblin", domain.Vec2{X: 12.5, Y: 8.5}},
		{"goblin", domain.Vec2{X: 25.5, Y: 14.5}},
		{"giant_rat", domain.Vec2{X: 8.5, Y: 20.5}},
		{"skeleton_warrior", domain.Vec2{X: 30.5, Y: 32.5}},
	}
	for _, sp := range spawns {
		if _, err := sim.SpawnHostile(sp.typeID, sp.pos); err != nil {
			logger.Log.WithError(err).Fatal("Failed to populate arena")
		}
	}

	pilot := agent.NewAutopilot(sim)

	// Человекочитаемая лента событий для наблюдателей.
	// Шина синхронная, а тик и рассылка идут из одной горутины,
	// поэтому обычный срез без блокировок.
	var pending []api.EventLine
	record := func(text string) {
		pending = append(pending, api.EventLine{Tick: sim.Tick, Text: text})
	}
	sim.Bus.Subscribe(domain.EventEntityDeath, func(e domain.Event) {
		ev := e.(domain.EntityDeathEvent)
		record(fmt.Sprintf("%s slain by %s", ev.EntityID, ev.KillerID))
	})
	sim.Bus.Subscribe(domain.EventLootDropped, func(e domain.Event) {
		ev := e.(domain.LootDroppedEvent)
		record(fmt.Sprintf("%s dropped %dx %s", ev.SourceID, ev.Quantity, ev.ItemID))
	})
	sim.Bus.Subscribe(domain.EventSkillLevelUp, func(e domain.Event) {
		ev := e.(domain.SkillLevelUpEvent)
		record(fmt.Sprintf("%s advanced %s to level %d", ev.EntityID, ev.Skill, ev.NewLevel))
	})

	// 3. Хаб наблюдателей и HTTP сервер
	hub := network.NewBroadcaster()
	srv := server.New(hub, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 4. Главный цикл: фиксированный тик симуляционного времени.
	// Все мутации мира происходят в этой горутине.
	ticker := time.NewTicker(time.Duration(tickMs) * time.Millisecond)
	defer ticker.Stop()

	dtMs := float64(tickMs)
	for {
		select {
		case <-ticker.C:
			sim.Update(dtMs)
			pilot.Step(dtMs)

			snap := sim.Snapshot()
			snap.Events = pending
			pending = nil
			hub.Broadcast(snap)

		case <-stop:
			logger.Log.Info("Shutting down...")
			return
		}
	}
}
