package dashboard

// ========== LEADERBOARD ==========

type LeaderboardEntry struct {
	Position     int    `json:"position"`
	UserID       string `json:"user_id"`
	DiscordID    string `json:"discord_id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Rank         string `json:"rank"`
	Department   string `json:"department"`
	TotalMinutes int64  `json:"total_minutes"`
	TotalHours   string `json:"total_hours"` // "{h}h {m}m"
}

func NormalizeLeaderboardLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// ========== ACTIVE ROSTER ==========

type RosterMember struct {
	UserID         string `json:"user_id"`
	DiscordID      string `json:"discord_id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Rank           string `json:"rank"`
	Department     string `json:"department"`
	AttendanceID   string `json:"attendance_id"`
	ClockIn        string `json:"clock_in"`
	ElapsedMinutes int64  `json:"elapsed_minutes"` // computed at read time
	Elapsed        string `json:"elapsed"`
}

type RosterResponse struct {
	Members []RosterMember `json:"members"`
	Count   int            `json:"count"`
}

// ========== STATS ==========

type StatsResponse struct {
	TotalUsers      int64 `json:"total_users"`
	ActiveUsers     int64 `json:"active_users"`
	CurrentlyOnDuty int64 `json:"currently_on_duty"`
}

// ========== COMBINED DASHBOARD ==========

// OverviewResponse is the combined response for the main dashboard endpoint
type OverviewResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Roster      RosterResponse     `json:"roster"`
	Stats       StatsResponse      `json:"stats"`
	UpdatedAt   string             `json:"updated_at"`
}
