package user

import "time"

type Rank string

const (
	RankDirektur        Rank = "Direktur"
	RankWakdir          Rank = "Wakdir"
	RankHRD             Rank = "HRD"
	RankSekretaris      Rank = "Sekretaris"
	RankDokterSpesialis Rank = "Dokter Spesialis"
	RankDokterUmum      Rank = "Dokter Umum"
	RankPerawat         Rank = "Perawat"
	RankTrainee         Rank = "Trainee"
)

type Department string

const (
	DepartmentEMS            Department = "EMS"
	DepartmentFireDepartment Department = "Fire Department"
)

type User struct {
	ID           string
	DiscordID    string
	Username     string
	DisplayName  string
	CustomName   *string
	Rank         Rank
	Department   Department
	IsWebAdmin   bool
	IsActive     bool
	TotalMinutes int64
	JoinDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user may use the admin surface
func (u *User) IsAdmin() bool {
	return IsAdmin(u.Rank, u.IsWebAdmin)
}

// EffectiveName prefers the admin-set custom name over the Discord display name.
func (u *User) EffectiveName() string {
	if u.CustomName != nil && *u.CustomName != "" {
		return *u.CustomName
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
