package model

import "time"

// DayPlan holds the two meal slots of a single day. A nil slot means nothing
// is planned; a non-nil slot holds a recipe ID belonging to the same user.
//
// WHY *string AND NOT string?
// JSON clients distinguish "no recipe planned" (null) from a recipe reference.
// A plain string would collapse null and "" into the same value on the wire,
// and PUT /weekplan must round-trip the grid exactly as the client sent it.
type DayPlan struct {
	Lunch  *string `json:"lunch"`
	Dinner *string `json:"dinner"`
}

// WeekPlan is a user's 7-day × {lunch, dinner} planning grid.
// Each user has exactly one plan, created lazily on first access.
type WeekPlan struct {
	ID        string    `json:"id"        db:"id"`
	UserID    string    `json:"userId"    db:"user_id"`
	Monday    DayPlan   `json:"monday"`
	Tuesday   DayPlan   `json:"tuesday"`
	Wednesday DayPlan   `json:"wednesday"`
	Thursday  DayPlan   `json:"thursday"`
	Friday    DayPlan   `json:"friday"`
	Saturday  DayPlan   `json:"saturday"`
	Sunday    DayPlan   `json:"sunday"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Days returns pointers to the seven day plans in Monday→Sunday order.
// Callers iterate over the grid without naming each field, and mutations
// through the returned pointers update the plan itself (the cascade that
// clears a deleted recipe's slots relies on this).
func (p *WeekPlan) Days() []*DayPlan {
	return []*DayPlan{
		&p.Monday, &p.Tuesday, &p.Wednesday, &p.Thursday,
		&p.Friday, &p.Saturday, &p.Sunday,
	}
}

// Slots returns pointers to all 14 meal slots (lunch then dinner, per day,
// Monday→Sunday). Each element points at a *string field in the plan.
func (p *WeekPlan) Slots() []**string {
	slots := make([]**string, 0, 14)
	for _, d := range p.Days() {
		slots = append(slots, &d.Lunch, &d.Dinner)
	}
	return slots
}

// RecipeIDs returns the distinct recipe IDs referenced anywhere in the grid.
func (p *WeekPlan) RecipeIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, slot := range p.Slots() {
		if *slot != nil && !seen[**slot] {
			seen[**slot] = true
			ids = append(ids, **slot)
		}
	}
	return ids
}
