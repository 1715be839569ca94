package progressController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"workmate/config"
	"workmate/database"
	"workmate/models"
	authRoutes "workmate/routers/authRoutes"
	progressRoutes "workmate/routers/progressRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:        "testsecret",
		SaltRound:     4,
		TokenTTLHours: 1,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.CourseProgress{},
		&models.Notification{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	return app
}

func jsonRequest(method, path string, body interface{}, cookie *http.Cookie) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func registerUser(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/auth/register", fiber.Map{
		"name":     "Ann",
		"email":    email,
		"password": "pw1",
	}, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie in register response")
	return nil
}

func reportProgress(t *testing.T, app *fiber.App, cookie *http.Cookie, payload fiber.Map) {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/progress/update", payload, cookie), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

type courseProgressBody struct {
	Progress      int     `json:"progress"`
	WatchTime     float64 `json:"watchTime"`
	VideoDuration float64 `json:"videoDuration"`
	IsCompleted   bool    `json:"isCompleted"`
}

func getCourse(t *testing.T, app *fiber.App, cookie *http.Cookie, courseID int) courseProgressBody {
	t.Helper()
	resp, err := app.Test(jsonRequest("GET", fmt.Sprintf("/api/progress/%d", courseID), nil, cookie), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body courseProgressBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestUpdateLastWriteWins(t *testing.T) {
	app := setupApp(t)
	cookie := registerUser(t, app, "ann@x.com")

	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 2, "watchedTime": 300, "videoDuration": 900, "progressPercentage": 33,
	})

	body := getCourse(t, app, cookie, 2)
	assert.Equal(t, 33, body.Progress)
	assert.Equal(t, 300.0, body.WatchTime)
	assert.False(t, body.IsCompleted)

	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 2, "watchedTime": 900, "videoDuration": 900, "progressPercentage": 100,
	})

	body = getCourse(t, app, cookie, 2)
	assert.Equal(t, 100, body.Progress)
	assert.Equal(t, 900.0, body.WatchTime)
	assert.True(t, body.IsCompleted)

	// A stale report still overwrites: no monotonicity guard
	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 2, "watchedTime": 100, "videoDuration": 900, "progressPercentage": 11,
	})

	body = getCourse(t, app, cookie, 2)
	assert.Equal(t, 11, body.Progress)
	assert.False(t, body.IsCompleted)

	// Still a single row per (user, course)
	var rows int64
	require.NoError(t, database.Database.Db.Model(&models.CourseProgress{}).
		Where("course_id = ?", 2).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestGetCourseWithoutRow(t *testing.T) {
	app := setupApp(t)
	cookie := registerUser(t, app, "ann@x.com")

	body := getCourse(t, app, cookie, 3)
	assert.Zero(t, body.Progress)
	assert.Zero(t, body.WatchTime)
	assert.Zero(t, body.VideoDuration)
	assert.False(t, body.IsCompleted)
}

func TestGetAllPrimesCatalog(t *testing.T) {
	app := setupApp(t)
	cookie := registerUser(t, app, "ann@x.com")

	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 1, "watchedTime": 60, "videoDuration": 600, "progressPercentage": 10,
	})

	resp, err := app.Test(jsonRequest("GET", "/api/progress/all", nil, cookie), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Progress       map[int]int     `json:"progress"`
		WatchTime      map[int]float64 `json:"watchTime"`
		VideoDurations map[int]float64 `json:"videoDurations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	// Every catalog course reports, untouched ones at zero
	assert.Len(t, body.Progress, len(models.CourseCatalog))
	assert.Equal(t, 10, body.Progress[1])
	assert.Equal(t, 60.0, body.WatchTime[1])
	assert.Equal(t, 600.0, body.VideoDurations[1])
	assert.Zero(t, body.Progress[5])
}

func TestUpdateDuration(t *testing.T) {
	app := setupApp(t)
	cookie := registerUser(t, app, "ann@x.com")

	// Duration report for a course with no progress row creates one
	resp, err := app.Test(jsonRequest("POST", "/api/progress/duration", fiber.Map{
		"courseId": 4, "duration": 2700,
	}, cookie), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := getCourse(t, app, cookie, 4)
	assert.Equal(t, 2700.0, body.VideoDuration)
	assert.Zero(t, body.Progress)

	// A later duration probe must not clobber progress
	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 4, "watchedTime": 270, "videoDuration": 2700, "progressPercentage": 10,
	})
	resp, err = app.Test(jsonRequest("POST", "/api/progress/duration", fiber.Map{
		"courseId": 4, "duration": 2800,
	}, cookie), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = getCourse(t, app, cookie, 4)
	assert.Equal(t, 2800.0, body.VideoDuration)
	assert.Equal(t, 10, body.Progress)
	assert.Equal(t, 270.0, body.WatchTime)
}

func TestReset(t *testing.T) {
	app := setupApp(t)
	cookie := registerUser(t, app, "ann@x.com")

	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 2, "watchedTime": 900, "videoDuration": 900, "progressPercentage": 100,
	})

	resp, err := app.Test(jsonRequest("POST", "/api/progress/reset/2", nil, cookie), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := getCourse(t, app, cookie, 2)
	assert.Zero(t, body.Progress)
	assert.Zero(t, body.WatchTime)
	assert.False(t, body.IsCompleted)
	// The probed duration survives a reset
	assert.Equal(t, 900.0, body.VideoDuration)
}

func TestStatsSummary(t *testing.T) {
	app := setupApp(t)
	cookie := registerUser(t, app, "ann@x.com")

	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 1, "watchedTime": 600, "videoDuration": 600, "progressPercentage": 100,
	})
	reportProgress(t, app, cookie, fiber.Map{
		"courseId": 2, "watchedTime": 300, "videoDuration": 900, "progressPercentage": 50,
	})

	resp, err := app.Test(jsonRequest("GET", "/api/progress/stats/summary", nil, cookie), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats struct {
		TotalCourses     int     `json:"totalCourses"`
		CompletedCourses int     `json:"completedCourses"`
		AvgProgress      int     `json:"avgProgress"`
		TotalWatchTime   float64 `json:"totalWatchTime"`
		WatchedThisWeek  int     `json:"watchedThisWeek"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.TotalCourses)
	assert.Equal(t, 1, stats.CompletedCourses)
	assert.Equal(t, 75, stats.AvgProgress)
	assert.Equal(t, 900.0, stats.TotalWatchTime)
	assert.Equal(t, 2, stats.WatchedThisWeek)
}

func TestListCourses(t *testing.T) {
	app := setupApp(t)

	// The catalog is public
	resp, err := app.Test(jsonRequest("GET", "/api/progress/courses/list", nil, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Courses []models.Course `json:"courses"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Courses, 5)
	assert.Equal(t, "新人導向", body.Courses[0].Title)
	assert.True(t, body.Courses[1].Required)
}

func TestProgressRequiresAuth(t *testing.T) {
	app := setupApp(t)
	registerUser(t, app, "ann@x.com")

	resp, err := app.Test(jsonRequest("POST", "/api/progress/update", fiber.Map{
		"courseId": 1, "watchedTime": 60, "progressPercentage": 10,
	}, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var rows int64
	require.NoError(t, database.Database.Db.Model(&models.CourseProgress{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestBearerTokenAccepted(t *testing.T) {
	app := setupApp(t)
	cookie := registerUser(t, app, "ann@x.com")

	// The same credential is valid in the Authorization header
	req := jsonRequest("GET", "/api/progress/all", nil, nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
