package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iamkaranroushan/grocery-application-backend/models"
	"github.com/iamkaranroushan/grocery-application-backend/realtime"
)

var (
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidOrderItem = errors.New("order item has invalid quantity or price")
	ErrOrderNotFound    = errors.New("order not found")
)

// Publisher is the realtime side of the fan-out. *realtime.Hub satisfies it.
type Publisher interface {
	Publish(room string, ev realtime.Event) int
}

type OrderItemInput struct {
	ProductID       uint    `json:"productId" binding:"required"`
	VariantID       *uint   `json:"variantId"`
	Quantity        int     `json:"quantity" binding:"required"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

type CreateOrderRequest struct {
	UserID        uint                 `json:"userId" binding:"required"`
	AddressID     uint                 `json:"addressId" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	IsPaid        bool                 `json:"isPaid"`
	OrderItems    []OrderItemInput     `json:"orderItems"`
}

type UpdateOrderStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	DeliveryDate string `json:"deliveryDate"`
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// parseDeliveryDate accepts an RFC 3339 timestamp or a bare date. Absent or
// unparseable input clears the delivery date to unset.
func parseDeliveryDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func hydrateOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := db.
		Preload("User").
		Preload("ShippingAddress").
		Preload("OrderItems.Product").
		Preload("OrderItems.Variant.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder validates and persists an order with its line items and the
// per-admin notification rows as one atomic unit. The total is computed
// server-side from the submitted quantities and price snapshots; any total
// the client sends is ignored. After the commit, exactly one event is
// published to the shared admin room regardless of how many admins exist.
func CreateOrder(db *gorm.DB, hub Publisher, req CreateOrderRequest) (*models.Order, error) {
	if len(req.OrderItems) == 0 {
		return nil, ErrEmptyOrder
	}

	totalPrice := 0.0
	for _, item := range req.OrderItems {
		if item.Quantity <= 0 || item.PriceAtPurchase < 0 {
			return nil, ErrInvalidOrderItem
		}
		totalPrice += item.PriceAtPurchase * float64(item.Quantity)
	}

	order := models.Order{
		OrderRef:      generateOrderRef(),
		UserID:        req.UserID,
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		IsPaid:        req.IsPaid,
		Status:        models.OrderStatusPending,
		TotalPrice:    totalPrice,
		OrderDate:     time.Now(),
	}
	for _, item := range req.OrderItems {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:       item.ProductID,
			VariantID:       item.VariantID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var customer models.User
		if err := tx.First(&customer, req.UserID).Error; err != nil {
			return err
		}

		var admins []models.User
		if err := tx.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
			return err
		}
		for _, admin := range admins {
			notification := models.Notification{
				RecipientID: admin.ID,
				Type:        models.NotificationOrderCreated,
				Title:       "new order placed",
				Message:     fmt.Sprintf("New order placed by %s", customer.Username),
				OrderID:     &order.ID,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	hydrated, err := hydrateOrder(db, order.ID)
	if err != nil {
		return nil, err
	}

	// One publish per order, not one per admin: the admin room is a single
	// shared broadcast group.
	hub.Publish(realtime.AdminRoom, realtime.Event{
		Event:   "newOrder",
		Message: "New order placed",
		Order:   hydrated,
	})

	return hydrated, nil
}

// UpdateOrderStatus mutates status and delivery date and records one
// ORDER_UPDATED notification for the order's owner. It deliberately does not
// publish to the realtime channel: the operator UI that triggered the change
// re-broadcasts it over its own socket session.
func UpdateOrderStatus(db *gorm.DB, id uint, status, deliveryDate string) (*models.Order, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		order.Status = status
		order.DeliveryDate = parseDeliveryDate(deliveryDate)
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		notification := models.Notification{
			RecipientID: order.UserID,
			Type:        models.NotificationOrderUpdated,
			Title:       "Order status updated",
			Message:     fmt.Sprintf("Your order #%d has been %s", order.ID, strings.ToLower(status)),
			OrderID:     &order.ID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}
	return hydrateOrder(db, id)
}

// FetchUserOrders returns a user's orders, newest first.
func FetchUserOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("user_id = ?", userID).
		Preload("User").
		Preload("ShippingAddress").
		Preload("OrderItems.Product").
		Preload("OrderItems.Variant.Product").
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchAllOrders returns every order, newest first.
func FetchAllOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.
		Preload("User").
		Preload("ShippingAddress").
		Preload("OrderItems.Product").
		Preload("OrderItems.Variant.Product").
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteOrder removes an order and its items in one transaction.
func DeleteOrder(db *gorm.DB, id uint) error {
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// -------- Handlers --------

func CreateOrderHandler(db *gorm.DB, hub Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error(), "order": nil})
			return
		}

		order, err := CreateOrder(db, hub, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyOrder):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order must contain at least one item", "order": nil})
			case errors.Is(err, ErrInvalidOrderItem):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order item has invalid quantity or price", "order": nil})
			default:
				log.Printf("failed to create order: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An unexpected error occurred", "order": nil})
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "error": nil, "order": order})
	}
}

func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"order": nil, "error": "orderID must be a numeric id"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"order": nil, "error": "status is required"})
			return
		}

		order, err := UpdateOrderStatus(db, uint(id), req.Status, req.DeliveryDate)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"order": nil, "error": "Order not found"})
				return
			}
			log.Printf("failed to update order status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"order": nil, "error": "Failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "error": nil})
	}
}

func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"orders": nil, "error": "userID must be a numeric id"})
			return
		}

		orders, err := FetchUserOrders(db, uint(userID))
		if err != nil {
			log.Printf("failed to fetch user orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"orders": nil, "error": "Failed to fetch user orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "error": nil})
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := FetchAllOrders(db)
		if err != nil {
			log.Printf("failed to fetch orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"orders": nil, "error": "Failed to fetch all orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders, "error": nil})
	}
}

func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"order": nil, "error": "orderID must be a numeric id"})
			return
		}

		order, err := hydrateOrder(db, uint(id))
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"order": nil, "error": "Order not found"})
				return
			}
			log.Printf("failed to fetch order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"order": nil, "error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "error": nil})
	}
}

func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "orderID must be a numeric id"})
			return
		}

		if err := DeleteOrder(db, uint(id)); err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
				return
			}
			log.Printf("failed to delete order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "error": nil})
	}
}
