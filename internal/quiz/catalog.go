package quiz

// CareerProfile 定义了职业目录中的一条固定画像。
// 规则打分引擎只依赖这份目录，不依赖外部数据。
type CareerProfile struct {
	Title       string
	Description string
	Keywords    []string
	Skills      []string
	Industries  []string
	SalaryRange string
	Outlook     string
}

// careerCatalog 是内置的职业画像目录。
// 顺序无意义，匹配结果按得分重新排序。
var careerCatalog = []CareerProfile{
	{
		Title:       "Software Developer",
		Description: "设计、编写和维护软件系统，是技术行业需求最大的岗位之一。",
		Keywords:    []string{"technology", "programming", "coding", "software", "computers", "development"},
		Skills:      []string{"Programming", "Problem Solving", "Algorithms", "Version Control"},
		Industries:  []string{"Technology", "Finance", "Healthcare"},
		SalaryRange: "$70,000 - $150,000",
		Outlook:     "远高于平均水平的增长（预计十年增长25%）",
	},
	{
		Title:       "Data Scientist",
		Description: "从数据中提取洞察，构建统计模型和机器学习系统。",
		Keywords:    []string{"data", "statistics", "analysis", "math", "machine learning", "research"},
		Skills:      []string{"Statistics", "Python", "Machine Learning", "Data Visualization"},
		Industries:  []string{"Technology", "Finance", "Research"},
		SalaryRange: "$85,000 - $165,000",
		Outlook:     "远高于平均水平的增长（预计十年增长35%）",
	},
	{
		Title:       "UX Designer",
		Description: "研究用户行为，设计易用且有吸引力的产品界面。",
		Keywords:    []string{"design", "art", "creativity", "user experience", "visual", "drawing"},
		Skills:      []string{"Design Thinking", "Prototyping", "User Research", "Visual Design"},
		Industries:  []string{"Technology", "Media", "Retail"},
		SalaryRange: "$60,000 - $120,000",
		Outlook:     "高于平均水平的增长（预计十年增长16%）",
	},
	{
		Title:       "Registered Nurse",
		Description: "在临床一线提供病人护理，是医疗体系的核心力量。",
		Keywords:    []string{"healthcare", "medicine", "helping", "biology", "care", "people"},
		Skills:      []string{"Patient Care", "Clinical Knowledge", "Communication", "Critical Thinking"},
		Industries:  []string{"Healthcare"},
		SalaryRange: "$60,000 - $110,000",
		Outlook:     "高于平均水平的增长（预计十年增长9%）",
	},
	{
		Title:       "Financial Analyst",
		Description: "评估投资机会，为企业和个人提供财务决策支持。",
		Keywords:    []string{"finance", "money", "business", "economics", "investing", "numbers"},
		Skills:      []string{"Financial Modeling", "Excel", "Accounting", "Communication"},
		Industries:  []string{"Finance", "Consulting", "Insurance"},
		SalaryRange: "$60,000 - $125,000",
		Outlook:     "平均水平的增长（预计十年增长8%）",
	},
	{
		Title:       "Digital Marketer",
		Description: "策划并执行线上营销活动，分析渠道数据优化转化。",
		Keywords:    []string{"marketing", "social media", "writing", "communication", "advertising", "content"},
		Skills:      []string{"Content Creation", "SEO", "Analytics", "Copywriting"},
		Industries:  []string{"Media", "Retail", "Technology"},
		SalaryRange: "$45,000 - $95,000",
		Outlook:     "高于平均水平的增长（预计十年增长10%）",
	},
	{
		Title:       "Mechanical Engineer",
		Description: "设计和改进机械设备，覆盖制造、能源、汽车等行业。",
		Keywords:    []string{"engineering", "mechanics", "physics", "building", "machines", "manufacturing"},
		Skills:      []string{"CAD", "Thermodynamics", "Materials Science", "Project Management"},
		Industries:  []string{"Manufacturing", "Automotive", "Energy"},
		SalaryRange: "$65,000 - $120,000",
		Outlook:     "平均水平的增长（预计十年增长10%）",
	},
	{
		Title:       "Teacher",
		Description: "在中小学或高校从事教学，培养下一代人才。",
		Keywords:    []string{"teaching", "education", "helping", "children", "learning", "mentoring"},
		Skills:      []string{"Lesson Planning", "Communication", "Classroom Management", "Subject Expertise"},
		Industries:  []string{"Education"},
		SalaryRange: "$40,000 - $85,000",
		Outlook:     "平均水平的增长（预计十年增长4%）",
	},
}

// CatalogProfiles 返回职业目录的副本。
func CatalogProfiles() []CareerProfile {
	out := make([]CareerProfile, len(careerCatalog))
	copy(out, careerCatalog)
	return out
}
