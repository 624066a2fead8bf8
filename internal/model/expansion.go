package model

// ExpansionID identifies an expansion (set) in the vendor catalog.
type ExpansionID int64

// Expansion is a card set as published by the vendor.
type Expansion struct {
	Code   string      `json:"code" yaml:"code"`
	Name   string      `json:"name" yaml:"name"`
	ID     ExpansionID `json:"id" yaml:"id"`
	GameID int         `json:"game_id" yaml:"game_id"`
}

// ExpansionTable maps expansion ids to expansions of a single game.
type ExpansionTable map[ExpansionID]Expansion
