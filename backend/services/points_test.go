package services_test

import (
	"testing"

	"artschool/backend/models"
	"artschool/backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardPoints(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "student1")

	require.NoError(t, services.AwardPoints(db, student.ID, 20))
	require.NoError(t, services.AwardPoints(db, student.ID, 5))

	var got models.Student
	require.NoError(t, db.First(&got, student.ID).Error)
	assert.Equal(t, 25, got.Points)
}

func TestAwardPointsNegative(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "student1")

	err := services.AwardPoints(db, student.ID, -5)
	assert.Equal(t, services.KindBadRequest, services.KindOf(err))

	var got models.Student
	require.NoError(t, db.First(&got, student.ID).Error)
	assert.Equal(t, 0, got.Points)
}

func TestAwardPointsUnknownStudent(t *testing.T) {
	db := newTestDB(t)

	err := services.AwardPoints(db, 9999, 10)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}
