package services

import (
	"log"

	"github.com/KirkDiggler/dnd-combat-engine/internal/catalog"
	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/combatants"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-combat-engine/internal/services/encounter"
	"github.com/KirkDiggler/dnd-combat-engine/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	EncounterService encounter.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	EncounterRepository encounters.Repository
	CombatantRepository combatants.Repository
	Catalog             encounter.Catalog
	Roller              dice.Roller
	Broadcaster         events.Broadcaster
	UUIDGenerator       uuid.Generator
}

// NewProvider creates a new service provider with all services initialized.
// Missing collaborators fall back to in-memory stores, the embedded catalog
// and real dice.
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	encounterRepo := cfg.EncounterRepository
	if encounterRepo == nil {
		encounterRepo = encounters.NewInMemoryRepository()
	}

	var combatantRepo combatants.Repository = cfg.CombatantRepository
	if combatantRepo == nil {
		combatantRepo = combatants.NewInMemoryRepository()
	}

	cat := cfg.Catalog
	if cat == nil {
		def, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		cat = def
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	if cfg.Broadcaster == nil {
		log.Println("Services: no broadcaster configured, events stay local")
	}

	encounterService := encounter.NewService(&encounter.ServiceConfig{
		Repository:          encounterRepo,
		CombatantRepository: combatantRepo,
		Catalog:             cat,
		Roller:              roller,
		Broadcaster:         cfg.Broadcaster,
		UUIDGenerator:       cfg.UUIDGenerator,
	})

	return &Provider{
		EncounterService: encounterService,
	}, nil
}
