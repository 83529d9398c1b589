package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obe-automation/attainment-api/internal/middleware"
	"github.com/obe-automation/attainment-api/internal/models"
	"github.com/obe-automation/attainment-api/pkg/response"
)

type directoryServiceMock struct {
	clos          []models.CourseLearningOutcome
	plos          []models.ProgramLearningOutcome
	sections      []models.Section
	lastFacultyID string
}

func (m *directoryServiceMock) CLOsByCourse(ctx context.Context, courseID string) ([]models.CourseLearningOutcome, error) {
	return m.clos, nil
}

func (m *directoryServiceMock) PLOsByProgram(ctx context.Context, programID string) ([]models.ProgramLearningOutcome, error) {
	return m.plos, nil
}

func (m *directoryServiceMock) SectionsByFaculty(ctx context.Context, facultyID string) ([]models.Section, error) {
	m.lastFacultyID = facultyID
	return m.sections, nil
}

func TestDirectoryHandlerCourseCLOs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &directoryServiceMock{
		clos: []models.CourseLearningOutcome{{ID: "clo-1", CourseID: "course-1", Number: 1}},
	}
	h := NewDirectoryHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/courses/course-1/clos")
	c.Params = gin.Params{{Key: "id", Value: "course-1"}}

	h.CourseCLOs(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Error)
}

func TestDirectoryHandlerMySections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &directoryServiceMock{
		sections: []models.Section{{ID: "sec-1", FacultyID: "fac-1"}},
	}
	h := NewDirectoryHandler(mockSvc)

	c, w := newGinContext(http.MethodGet, "/faculty/sections")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "fac-1", Role: models.RoleFaculty})

	h.MySections(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fac-1", mockSvc.lastFacultyID)
}

func TestDirectoryHandlerMySectionsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDirectoryHandler(&directoryServiceMock{})

	c, w := newGinContext(http.MethodGet, "/faculty/sections")

	h.MySections(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
