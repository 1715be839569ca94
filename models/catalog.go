package models

// Course is a static catalog entry. The catalog is configuration data, not a
// mutable table; progress rows reference it by numeric id only.
type Course struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Required    bool     `json:"required"`
	DurationMin int      `json:"durationMin"`
	Tags        []string `json:"tags"`
	VideoURL    string   `json:"videoUrl"`
}

// CourseCatalog lists every course the training pages know about. Kept in
// sync with the client's course list.
var CourseCatalog = []Course{
	{
		ID:          1,
		Title:       "新人導向",
		Description: "了解公司文化、願景與基本規範",
		Category:    "基礎訓練",
		Required:    true,
		DurationMin: 60,
		Tags:        []string{"入職", "公司文化"},
		VideoURL:    "/videos/course-1.mp4",
	},
	{
		ID:          2,
		Title:       "資訊安全訓練",
		Description: "學習密碼管理、釣魚郵件防範、社交工程意識",
		Category:    "基礎訓練",
		Required:    true,
		DurationMin: 90,
		Tags:        []string{"資安", "必修"},
		VideoURL:    "/videos/course-2.mp4",
	},
	{
		ID:          3,
		Title:       "半導體製程基礎",
		Description: "晶圓、光刻、蝕刻等核心流程入門課程",
		Category:    "專業技能",
		Required:    false,
		DurationMin: 120,
		Tags:        []string{"半導體", "製程"},
		VideoURL:    "/videos/course-3.mp4",
	},
	{
		ID:          4,
		Title:       "EUV 基礎安全",
		Description: "極紫外光曝光機的操作安全規範",
		Category:    "專業技能",
		Required:    false,
		DurationMin: 45,
		Tags:        []string{"EUV", "安全"},
		VideoURL:    "/videos/course-4.mp4",
	},
	{
		ID:          5,
		Title:       "職涯規劃與發展",
		Description: "如何設定個人職涯目標與發展路徑",
		Category:    "職涯發展",
		Required:    false,
		DurationMin: 75,
		Tags:        []string{"職涯", "發展"},
		VideoURL:    "/videos/course-5.mp4",
	},
}

// CatalogCourseIDs returns the ids of every catalog course, used to prime
// zero-progress entries for users who have not started a course yet.
func CatalogCourseIDs() []int {
	ids := make([]int, 0, len(CourseCatalog))
	for _, c := range CourseCatalog {
		ids = append(ids, c.ID)
	}
	return ids
}
