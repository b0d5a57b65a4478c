package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sartoria/sartoria-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCreatePayment(t *testing.T) {
	db := setupControllerTestDB(t)

	order := models.Order{OrderNumber: "ORD-2026-0001", CustomerName: "Ada Rossi", GarmentType: "suit", Amount: 900, Status: models.StatusCutting}
	db.Create(&order)

	router := setupTestRouter()
	router.POST("/payments", CreatePayment)

	post := func(body map[string]interface{}) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/payments", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post(map[string]interface{}{"order_id": order.ID, "amount": 300, "method": "cash"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = post(map[string]interface{}{"order_id": order.ID, "amount": 300, "method": "barter"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(map[string]interface{}{"order_id": 9999, "amount": 300, "method": "cash"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(map[string]interface{}{"order_id": order.ID, "amount": -5, "method": "cash"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPaymentsBalance(t *testing.T) {
	db := setupControllerTestDB(t)

	order := models.Order{OrderNumber: "ORD-2026-0001", CustomerName: "Ada Rossi", GarmentType: "suit", Amount: 900, Status: models.StatusCutting}
	db.Create(&order)

	router := setupTestRouter()
	router.POST("/payments", CreatePayment)
	router.GET("/payments", ListPayments)

	for _, amount := range []float64{300, 250} {
		payload, _ := json.Marshal(map[string]interface{}{"order_id": order.ID, "amount": amount, "method": "card"})
		req, _ := http.NewRequest(http.MethodPost, "/payments", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/payments?order_id=%d", order.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(550), data["total_paid"])
	assert.Equal(t, float64(350), data["balance"])
	assert.Len(t, data["payments"], 2)
}
