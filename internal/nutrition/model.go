package nutrition

import "time"

type Entry struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Date      time.Time `db:"entry_date" json:"date"`
	Meal      string    `db:"meal" json:"meal"`
	Calories  int       `db:"calories" json:"calories"`
	ProteinG  int       `db:"protein_g" json:"protein_g"`
	CarbsG    int       `db:"carbs_g" json:"carbs_g"`
	FatG      int       `db:"fat_g" json:"fat_g"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateEntryRequest struct {
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Meal     string `json:"meal" binding:"required,oneof=breakfast lunch dinner snack"`
	Calories int    `json:"calories" binding:"required,min=0,max=10000"`
	ProteinG int    `json:"protein_g" binding:"min=0,max=1000"`
	CarbsG   int    `json:"carbs_g" binding:"min=0,max=1000"`
	FatG     int    `json:"fat_g" binding:"min=0,max=1000"`
}

// Totals aggregates one day's entries.
type Totals struct {
	Calories int `db:"calories" json:"calories"`
	ProteinG int `db:"protein_g" json:"protein_g"`
	CarbsG   int `db:"carbs_g" json:"carbs_g"`
	FatG     int `db:"fat_g" json:"fat_g"`
}

// DayView is the diary response for one date.
type DayView struct {
	Date       string  `json:"date"`
	Entries    []Entry `json:"entries"`
	Totals     Totals  `json:"totals"`
	StreakDays int     `json:"streak_days"`
}
