package client

import (
	"fmt"

	"workmate/models"
)

// ProgressState mirrors the per-course progress maps the training pages
// render from.
type ProgressState struct {
	c *Client

	Progress       map[int]int
	WatchTime      map[int]float64
	VideoDurations map[int]float64
	IsLoggedIn     bool
}

func NewProgressState(c *Client) *ProgressState {
	return &ProgressState{
		c:              c,
		Progress:       map[int]int{},
		WatchTime:      map[int]float64{},
		VideoDurations: map[int]float64{},
	}
}

// LoadAll refreshes every course's progress. On failure the maps are
// cleared, matching an unauthenticated session.
func (s *ProgressState) LoadAll() error {
	var body struct {
		Progress       map[int]int     `json:"progress"`
		WatchTime      map[int]float64 `json:"watchTime"`
		VideoDurations map[int]float64 `json:"videoDurations"`
	}
	if err := s.c.get("/api/progress/all", &body); err != nil {
		s.Clear()
		return err
	}
	s.Progress = body.Progress
	s.WatchTime = body.WatchTime
	s.VideoDurations = body.VideoDurations
	s.IsLoggedIn = true
	return nil
}

func (s *ProgressState) Clear() {
	s.Progress = map[int]int{}
	s.WatchTime = map[int]float64{}
	s.VideoDurations = map[int]float64{}
	s.IsLoggedIn = false
}

// CourseProgress returns the cached percentage for a course
func (s *ProgressState) CourseProgress(courseID int) int {
	return s.Progress[courseID]
}

// Report sends a progress sample and updates the local mirror
func (s *ProgressState) Report(courseID int, watchedTime, videoDuration float64, progressPercentage int) error {
	err := s.c.post("/api/progress/update", map[string]interface{}{
		"courseId":           courseID,
		"watchedTime":        watchedTime,
		"videoDuration":      videoDuration,
		"progressPercentage": progressPercentage,
	}, nil)
	if err != nil {
		return err
	}
	s.Progress[courseID] = progressPercentage
	s.WatchTime[courseID] = watchedTime
	if videoDuration > 0 {
		s.VideoDurations[courseID] = videoDuration
	}
	return nil
}

// ReportDuration records the probed video length for a course
func (s *ProgressState) ReportDuration(courseID int, duration float64) error {
	err := s.c.post("/api/progress/duration", map[string]interface{}{
		"courseId": courseID,
		"duration": duration,
	}, nil)
	if err != nil {
		return err
	}
	s.VideoDurations[courseID] = duration
	return nil
}

// Reset zeroes a course locally and on the server
func (s *ProgressState) Reset(courseID int) error {
	if err := s.c.post(fmt.Sprintf("/api/progress/reset/%d", courseID), nil, nil); err != nil {
		return err
	}
	s.Progress[courseID] = 0
	s.WatchTime[courseID] = 0
	return nil
}

// StatsSummary aggregates the caller's training activity
type StatsSummary struct {
	TotalCourses     int     `json:"totalCourses"`
	CompletedCourses int     `json:"completedCourses"`
	AvgProgress      int     `json:"avgProgress"`
	TotalWatchTime   float64 `json:"totalWatchTime"`
	WatchedThisWeek  int     `json:"watchedThisWeek"`
}

func (s *ProgressState) Stats() (*StatsSummary, error) {
	var stats StatsSummary
	if err := s.c.get("/api/progress/stats/summary", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Courses fetches the static catalog
func (s *ProgressState) Courses() ([]models.Course, error) {
	var body struct {
		Courses []models.Course `json:"courses"`
	}
	if err := s.c.get("/api/progress/courses/list", &body); err != nil {
		return nil, err
	}
	return body.Courses, nil
}
