package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ogarridot/transfersol-backend/internal/models"
	"github.com/ogarridot/transfersol-backend/pkg/utils"
	"gorm.io/gorm"
)

type credentialsInput struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Password string `json:"password" binding:"required,min=3"`
}

// Register creates an admin dashboard account
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		user := models.User{
			Username: input.Username,
			Password: input.Password,
		}
		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Error creating user"})
			return
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Error creating user"})
			return
		}

		c.JSON(201, gin.H{"message": "User created successfully"})
	}
}

// Login verifies credentials and issues a JWT
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input credentialsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("username = ?", input.Username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(400, gin.H{"error": "Cannot find user"})
				return
			}
			c.JSON(500, gin.H{"error": "Error logging in"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Error generating token"})
			return
		}

		c.JSON(200, gin.H{"accessToken": token})
	}
}
