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

func TestCreateFabric(t *testing.T) {
	setupControllerTestDB(t)

	router := setupTestRouter()
	router.POST("/fabrics", CreateFabric)

	body, _ := json.Marshal(map[string]interface{}{
		"name":               "Navy worsted wool",
		"color":              "navy",
		"material":           "wool",
		"quantity_yards":     3.5,
		"min_quantity_yards": 5,
		"price_per_yard":     48.0,
		"supplier":           "Vitale Barberis",
	})
	req, _ := http.NewRequest(http.MethodPost, "/fabrics", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Navy worsted wool", data["name"])
	assert.Equal(t, true, data["active"])
	// Below threshold, so the derived flag is set straight away
	assert.Equal(t, true, data["low_stock"])
}

func TestListFabricsLowStockFilter(t *testing.T) {
	db := setupControllerTestDB(t)

	db.Create(&models.Fabric{Name: "Navy worsted wool", QuantityYards: 2, MinQuantityYards: 5})
	db.Create(&models.Fabric{Name: "White poplin", QuantityYards: 40, MinQuantityYards: 10})
	db.Create(&models.Fabric{Name: "Grey flannel", QuantityYards: 1, MinQuantityYards: 8})

	router := setupTestRouter()
	router.GET("/fabrics", ListFabrics)

	get := func(path string) []interface{} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		return response["data"].([]interface{})
	}

	assert.Len(t, get("/fabrics"), 3)

	lowStock := get("/fabrics?low_stock=true")
	assert.Len(t, lowStock, 2)
	for _, item := range lowStock {
		fabric := item.(map[string]interface{})
		assert.Equal(t, true, fabric["low_stock"])
	}

	assert.Len(t, get("/fabrics?q=poplin"), 1)
}

func TestUpdateFabricDeactivates(t *testing.T) {
	db := setupControllerTestDB(t)

	fabric := models.Fabric{Name: "Navy worsted wool", QuantityYards: 10, MinQuantityYards: 5, Active: true}
	db.Create(&fabric)

	router := setupTestRouter()
	router.PUT("/fabrics/:id", UpdateFabric)

	active := false
	body, _ := json.Marshal(map[string]interface{}{
		"name":               fabric.Name,
		"quantity_yards":     10,
		"min_quantity_yards": 5,
		"active":             active,
	})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/fabrics/%d", fabric.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Fabric
	db.First(&stored, fabric.ID)
	assert.False(t, stored.Active)
}
