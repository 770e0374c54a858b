package handlers

import (
	"github.com/driveline/rental-backend/internal/models"
	"github.com/driveline/rental-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name                 string  `json:"name" binding:"required"`
	Email                string  `json:"email" binding:"required,email"`
	Password             string  `json:"password" binding:"required,min=6"`
	Phone                string  `json:"phone"`
	Role                 string  `json:"role" binding:"required,oneof=admin employee stakeholder"`
	CommissionPercentage float64 `json:"commissionPercentage"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Role != string(models.RoleStakeholder) && input.CommissionPercentage != 0 {
			c.JSON(400, gin.H{"error": "Commission percentage only applies to stakeholders"})
			return
		}
		if input.CommissionPercentage < 0 || input.CommissionPercentage > 100 {
			c.JSON(400, gin.H{"error": "Commission percentage must be between 0 and 100"})
			return
		}

		// Hash the password
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Name:                 input.Name,
			Email:                input.Email,
			PasswordHash:         string(hashedPassword),
			PhoneNumber:          input.Phone,
			Role:                 input.Role,
			CommissionPercentage: input.CommissionPercentage,
		}

		if result := db.Create(&user); result.Error != nil {
			logrus.WithError(result.Error).Error("user creation failed")
			c.JSON(409, gin.H{"error": "A user with this email already exists"})
			return
		}

		c.JSON(201, gin.H{
			"message": "User created successfully",
			"user": gin.H{
				"id":          user.ID,
				"email":       user.Email,
				"name":        user.Name,
				"phoneNumber": user.PhoneNumber,
				"role":        user.Role,
			},
		})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.Blocked {
			c.JSON(403, gin.H{"error": "Account is blocked"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"user": gin.H{
				"id":          user.ID,
				"email":       user.Email,
				"name":        user.Name,
				"phoneNumber": user.PhoneNumber,
				"role":        user.Role,
			},
		})
	}
}
