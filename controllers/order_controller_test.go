package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sartoria/sartoria-api/models"
	"github.com/sartoria/sartoria-api/realtime"
	"github.com/stretchr/testify/assert"
)

func TestCreateMyOrder(t *testing.T) {
	db := setupControllerTestDB(t)

	customer := models.User{Name: "Ada Rossi", Email: "ada@example.com", PasswordHash: "x"}
	db.Create(&customer)

	tests := []struct {
		name           string
		userID         uint
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:   "Successfully place an order",
			userID: customer.ID,
			requestBody: map[string]interface{}{
				"garment_type":        "suit",
				"garment_description": "Two-piece navy suit",
				"fabric_details":      "Navy worsted wool",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "suit", data["garment_type"])
				assert.Equal(t, "pending", data["status"])
				assert.Equal(t, float64(0), data["amount"])
				assert.Equal(t, customer.Name, data["customer_name"])
				assert.Contains(t, data["order_number"], "ORD-")
			},
		},
		{
			name:           "Fail with missing garment type",
			userID:         customer.ID,
			requestBody:    map[string]interface{}{"garment_description": "???"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:   "Fail with someone else's measurement",
			userID: customer.ID,
			requestBody: map[string]interface{}{
				"garment_type":   "shirt",
				"measurement_id": 9999,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "MEASUREMENT_NOT_FOUND",
		},
		{
			name:           "Fail with unknown user",
			userID:         4242,
			requestBody:    map[string]interface{}{"garment_type": "shirt"},
			expectedStatus: http.StatusNotFound,
			expectedError:  "USER_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/orders", mockAuthMiddleware(tt.userID), CreateMyOrder)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateMyOrderPublishesInsertEvent(t *testing.T) {
	db := setupControllerTestDB(t)

	customer := models.User{Name: "Ada Rossi", Email: "ada@example.com", PasswordHash: "x"}
	db.Create(&customer)

	events, cancel := realtime.GetHub().Subscribe(realtime.TableOrders)
	defer cancel()

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(customer.ID), CreateMyOrder)

	body, _ := json.Marshal(map[string]interface{}{"garment_type": "shirt"})
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	evt := <-events
	assert.Equal(t, realtime.EventInsert, evt.Type)
	order, ok := evt.New.(models.Order)
	assert.True(t, ok)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestOrderNumbersIncrementPerYear(t *testing.T) {
	db := setupControllerTestDB(t)

	customer := models.User{Name: "Ada Rossi", Email: "ada@example.com", PasswordHash: "x"}
	db.Create(&customer)

	router := setupTestRouter()
	router.POST("/orders", mockAuthMiddleware(customer.ID), CreateMyOrder)

	var numbers []string
	for i := 0; i < 3; i++ {
		body, _ := json.Marshal(map[string]interface{}{"garment_type": "shirt"})
		req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		numbers = append(numbers, data["order_number"].(string))
	}

	for i, number := range numbers {
		assert.Contains(t, number, fmt.Sprintf("-%04d", i+1))
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupControllerTestDB(t)

	tests := []struct {
		name           string
		currentStatus  models.OrderStatus
		targetStatus   string
		expectedStatus int
		expectedError  string
	}{
		{"forward step", models.StatusPending, "cutting", http.StatusOK, ""},
		{"skip ahead", models.StatusPending, "completed", http.StatusOK, ""},
		{"cancel from stitching", models.StatusStitching, "cancelled", http.StatusOK, ""},
		{"rewind rejected", models.StatusFitting, "cutting", http.StatusConflict, "ILLEGAL_TRANSITION"},
		{"self transition rejected", models.StatusCutting, "cutting", http.StatusConflict, "ILLEGAL_TRANSITION"},
		{"delivered is terminal", models.StatusDelivered, "pending", http.StatusConflict, "ILLEGAL_TRANSITION"},
		{"cancelled is terminal", models.StatusCancelled, "pending", http.StatusConflict, "ILLEGAL_TRANSITION"},
		{"delivered cannot be cancelled", models.StatusDelivered, "cancelled", http.StatusConflict, "ILLEGAL_TRANSITION"},
		{"unknown status rejected", models.StatusPending, "embroidery", http.StatusBadRequest, "INVALID_STATUS"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := models.Order{
				OrderNumber:  fmt.Sprintf("ORD-2026-9%03d", i),
				CustomerName: "Ada Rossi",
				GarmentType:  "suit",
				Status:       tt.currentStatus,
			}
			db.Create(&order)

			router := setupTestRouter()
			router.PATCH("/orders/:id/status", UpdateOrderStatus)

			body, _ := json.Marshal(map[string]interface{}{"status": tt.targetStatus})
			req, _ := http.NewRequest(http.MethodPatch,
				fmt.Sprintf("/orders/%d/status", order.ID), bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])

				// The stored status must be untouched
				var unchanged models.Order
				db.First(&unchanged, order.ID)
				assert.Equal(t, tt.currentStatus, unchanged.Status)
				return
			}

			data := response["data"].(map[string]interface{})
			orderData := data["order"].(map[string]interface{})
			assert.Equal(t, tt.targetStatus, orderData["status"])
			assert.NotNil(t, data["timeline"])
		})
	}
}

func TestUpdateOrderStatusPublishesUpdateEvent(t *testing.T) {
	db := setupControllerTestDB(t)

	order := models.Order{OrderNumber: "ORD-2026-0300", CustomerName: "Ada Rossi", GarmentType: "suit", Status: models.StatusPending}
	db.Create(&order)

	events, cancel := realtime.GetHub().Subscribe(realtime.TableOrders)
	defer cancel()

	router := setupTestRouter()
	router.PATCH("/orders/:id/status", UpdateOrderStatus)

	body, _ := json.Marshal(map[string]interface{}{"status": "cutting"})
	req, _ := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("/orders/%d/status", order.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	evt := <-events
	assert.Equal(t, realtime.EventUpdate, evt.Type)
	updated, ok := evt.New.(models.Order)
	assert.True(t, ok)
	assert.Equal(t, models.StatusCutting, updated.Status)
}

func TestGetOrderTimeline(t *testing.T) {
	db := setupControllerTestDB(t)

	t.Run("active order renders the stage chain", func(t *testing.T) {
		order := models.Order{OrderNumber: "ORD-2026-0400", CustomerName: "Ada Rossi", GarmentType: "suit", Status: models.StatusStitching}
		db.Create(&order)

		router := setupTestRouter()
		router.GET("/orders/:id/timeline", GetOrderTimeline)

		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/timeline", order.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, false, data["cancelled"])

		timeline := data["timeline"].([]interface{})
		assert.Len(t, timeline, 6)

		third := timeline[2].(map[string]interface{})
		assert.Equal(t, "stitching", third["status"])
		assert.Equal(t, true, third["current"])
		assert.Equal(t, "In Progress", third["state"])
	})

	t.Run("cancelled order renders the alert form", func(t *testing.T) {
		order := models.Order{OrderNumber: "ORD-2026-0401", CustomerName: "Ada Rossi", GarmentType: "suit", Status: models.StatusCancelled}
		db.Create(&order)

		router := setupTestRouter()
		router.GET("/orders/:id/timeline", GetOrderTimeline)

		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/timeline", order.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, true, data["cancelled"])
		assert.Nil(t, data["timeline"])
	})
}

func TestListOrders(t *testing.T) {
	db := setupControllerTestDB(t)

	db.Create(&models.Order{OrderNumber: "ORD-2026-0501", CustomerName: "Ada Rossi", GarmentType: "suit", Status: models.StatusPending})
	db.Create(&models.Order{OrderNumber: "ORD-2026-0502", CustomerName: "Bruno Bianchi", GarmentType: "shirt", Status: models.StatusCutting})
	db.Create(&models.Order{OrderNumber: "ORD-2026-0503", CustomerName: "Carla Verdi", GarmentType: "suit", Status: models.StatusCutting})

	router := setupTestRouter()
	router.GET("/orders", ListOrders)

	get := func(path string) (int, []interface{}) {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			return w.Code, nil
		}
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		return w.Code, response["data"].([]interface{})
	}

	code, data := get("/orders")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, data, 3)

	// Search is case-insensitive and spans customer name
	code, data = get("/orders?q=bruno")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, data, 1)

	code, data = get("/orders?status=cutting")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, data, 2)

	code, _ = get("/orders?status=embroidery")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDeleteOrderPublishesDeleteEvent(t *testing.T) {
	db := setupControllerTestDB(t)

	order := models.Order{OrderNumber: "ORD-2026-0600", CustomerName: "Ada Rossi", GarmentType: "suit", Status: models.StatusPending}
	db.Create(&order)

	events, cancel := realtime.GetHub().Subscribe(realtime.TableOrders)
	defer cancel()

	router := setupTestRouter()
	router.DELETE("/orders/:id", DeleteOrder)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	evt := <-events
	assert.Equal(t, realtime.EventDelete, evt.Type)
	deleted, ok := evt.Old.(models.Order)
	assert.True(t, ok)
	assert.Equal(t, order.ID, deleted.ID)

	// Soft delete: the row is gone from default queries
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)

	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyOrdersScopedToUser(t *testing.T) {
	db := setupControllerTestDB(t)

	ada := models.User{Name: "Ada Rossi", Email: "ada@example.com", PasswordHash: "x"}
	bruno := models.User{Name: "Bruno Bianchi", Email: "bruno@example.com", PasswordHash: "x"}
	db.Create(&ada)
	db.Create(&bruno)

	db.Create(&models.Order{OrderNumber: "ORD-2026-0701", CustomerName: ada.Name, GarmentType: "suit", Status: models.StatusPending, UserID: &ada.ID})
	db.Create(&models.Order{OrderNumber: "ORD-2026-0702", CustomerName: bruno.Name, GarmentType: "shirt", Status: models.StatusPending, UserID: &bruno.ID})

	router := setupTestRouter()
	router.GET("/orders", mockAuthMiddleware(ada.ID), ListMyOrders)

	req, _ := http.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "ORD-2026-0701", first["order_number"])
}
