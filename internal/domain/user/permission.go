package user

// AdminRanks are the ranks that grant admin access regardless of the web admin flag.
var AdminRanks = []Rank{RankDirektur, RankWakdir, RankHRD}

// IsAdmin is the single admin predicate used by middleware and services.
func IsAdmin(rank Rank, isWebAdmin bool) bool {
	if isWebAdmin {
		return true
	}
	for _, r := range AdminRanks {
		if r == rank {
			return true
		}
	}
	return false
}

// ValidRanks lists every rank in seniority order.
func ValidRanks() []string {
	return []string{
		string(RankDirektur),
		string(RankWakdir),
		string(RankHRD),
		string(RankSekretaris),
		string(RankDokterSpesialis),
		string(RankDokterUmum),
		string(RankPerawat),
		string(RankTrainee),
	}
}

func ValidDepartments() []string {
	return []string{string(DepartmentEMS), string(DepartmentFireDepartment)}
}
