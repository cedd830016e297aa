package models_test

import (
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
)

func (suite *TestSuiteStandard) TestUserUsernameNormalized() {
	user := suite.createTestUser(models.User{Username: "  MorrE "})

	suite.Assert().Equal("morre", user.Username)
}

func (suite *TestSuiteStandard) TestUserUsernameUnique() {
	suite.createTestUser(models.User{Username: "morre"})

	err := models.DB.Create(&models.User{Username: "Morre", Password: "not-a-real-hash"}).Error
	suite.Assert().ErrorIs(err, models.ErrUsernameNotUnique)
}

func (suite *TestSuiteStandard) TestFindUserByUsername() {
	user := suite.createTestUser(models.User{Username: "morre"})

	found, err := models.FindUserByUsername(models.DB, "MORRE")
	suite.Assert().NoError(err)
	suite.Assert().Equal(user.ID, found.ID)

	_, err = models.FindUserByUsername(models.DB, "nobody")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
