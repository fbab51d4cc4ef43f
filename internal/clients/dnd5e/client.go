package dnd5e

import (
	"net/http"
	"net/url"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

// api is the part of the upstream client we call
type api interface {
	GetEquipment(key string) (dnd5e.EquipmentInterface, error)
	GetSpell(key string) (*apiEntities.Spell, error)
	ListSpells(input *dnd5e.ListSpellsInput) ([]*apiEntities.ReferenceItem, error)
}

// TODO: add context to functions once the upstream client takes one
type client struct {
	client api
}

type Config struct {
	HttpClient *http.Client

	// BaseURL points requests at a mirror of the API. Empty uses the
	// public one.
	BaseURL string
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("dnd5e client config is required")
	}

	httpClient := cfg.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil || base.Host == "" {
			return nil, dnderr.InvalidArgumentf("invalid dnd5e API url %q", cfg.BaseURL)
		}
		rewritten := *httpClient
		rewritten.Transport = &baseURLTransport{base: base, next: httpClient.Transport}
		httpClient = &rewritten
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: httpClient,
	})
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to create dnd5e API client")
	}

	return &client{
		client: dndClient,
	}, nil
}

func (c *client) GetWeapon(key string) (*equipment.Weapon, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("weapon key is required")
	}

	response, err := c.client.GetEquipment(key)
	if err != nil {
		return nil, dnderr.Unavailable(err, "failed to get equipment "+key)
	}

	weapon, ok := response.(*apiEntities.Weapon)
	if !ok || weapon == nil {
		return nil, dnderr.NotFoundf("equipment %s is not a weapon", key)
	}
	return apiWeaponToWeapon(weapon), nil
}

// baseURLTransport sends every request to another host
type baseURLTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *baseURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.base.Scheme
	out.URL.Host = t.base.Host
	out.Host = t.base.Host

	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(out)
}
