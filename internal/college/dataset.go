package college

// fallbackColleges 是内置的院校兜底数据。
// 数据库查询失败或为空时直接返回这份数据，保证列表页永远有内容。
var fallbackColleges = []College{
	{CollegeID: "mit", Name: "Massachusetts Institute of Technology", Location: "Cambridge, MA", State: "MA", Type: "private", Majors: "Computer Science,Engineering,Mathematics,Physics", Ranking: 1},
	{CollegeID: "stanford", Name: "Stanford University", Location: "Stanford, CA", State: "CA", Type: "private", Majors: "Computer Science,Business,Engineering,Medicine", Ranking: 2},
	{CollegeID: "berkeley", Name: "University of California, Berkeley", Location: "Berkeley, CA", State: "CA", Type: "public", Majors: "Computer Science,Engineering,Data Science,Economics", Ranking: 3},
	{CollegeID: "cmu", Name: "Carnegie Mellon University", Location: "Pittsburgh, PA", State: "PA", Type: "private", Majors: "Computer Science,Robotics,Design,Business", Ranking: 4},
	{CollegeID: "gatech", Name: "Georgia Institute of Technology", Location: "Atlanta, GA", State: "GA", Type: "public", Majors: "Computer Science,Engineering,Cybersecurity", Ranking: 5},
	{CollegeID: "uiuc", Name: "University of Illinois Urbana-Champaign", Location: "Champaign, IL", State: "IL", Type: "public", Majors: "Computer Science,Engineering,Agriculture", Ranking: 6},
	{CollegeID: "umich", Name: "University of Michigan", Location: "Ann Arbor, MI", State: "MI", Type: "public", Majors: "Engineering,Business,Medicine,Computer Science", Ranking: 7},
	{CollegeID: "utaustin", Name: "University of Texas at Austin", Location: "Austin, TX", State: "TX", Type: "public", Majors: "Computer Science,Business,Communications", Ranking: 8},
	{CollegeID: "uw", Name: "University of Washington", Location: "Seattle, WA", State: "WA", Type: "public", Majors: "Computer Science,Medicine,Data Science", Ranking: 9},
	{CollegeID: "cornell", Name: "Cornell University", Location: "Ithaca, NY", State: "NY", Type: "private", Majors: "Engineering,Agriculture,Business,Computer Science", Ranking: 10},
	{CollegeID: "purdue", Name: "Purdue University", Location: "West Lafayette, IN", State: "IN", Type: "public", Majors: "Engineering,Aviation,Computer Science,Agriculture", Ranking: 11},
	{CollegeID: "ucla", Name: "University of California, Los Angeles", Location: "Los Angeles, CA", State: "CA", Type: "public", Majors: "Film,Medicine,Engineering,Psychology", Ranking: 12},
}

// FallbackColleges 返回内置兜底数据集的副本，防止调用方修改原始切片。
func FallbackColleges() []College {
	out := make([]College, len(fallbackColleges))
	copy(out, fallbackColleges)
	return out
}
