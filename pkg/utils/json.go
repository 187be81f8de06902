package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON เขียน response เป็น JSON พร้อม status code
// ถ้า data เป็น nil จะส่งแค่ header (ใช้กับ 204)
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}

// WriteError ส่ง error body รูปแบบเดียวกันทั้งแอป: {"error": "..."}
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
