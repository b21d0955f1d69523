// Seeds a running server with the demo workshop data set: three users,
// the equipment catalog, per-user equipment instances, and a shop space
// per user with placed equipment.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var apiBase = "http://localhost:8080/api/v1"

type seededUser struct {
	ID       uint
	Username string
}

type registerResponse struct {
	User struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

type createdEntity struct {
	ID uint `json:"id"`
}

type createdShop struct {
	ShopID string `json:"shop_id"`
}

func post(path string, payload interface{}, out interface{}) error {
	body, _ := json.Marshal(payload)

	resp, err := http.Post(apiBase+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed (%d): %s", path, resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
	}
	return nil
}

func registerUser(username, name, email, password string) (*seededUser, error) {
	var result registerResponse
	err := post("/auth/register", map[string]string{
		"username": username,
		"name":     name,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &seededUser{ID: result.User.ID, Username: result.User.Username}, nil
}

func addEquipmentType(name, description string, width, height, depth float64, intervalDays int, color, manufacturer, model, imagePath string) error {
	return post("/equipment/catalog", map[string]interface{}{
		"name":                      name,
		"description":               description,
		"width":                     width,
		"height":                    height,
		"depth":                     depth,
		"maintenance_interval_days": intervalDays,
		"color":                     color,
		"manufacturer":              manufacturer,
		"model":                     model,
		"image_path":                imagePath,
	}, nil)
}

func addEquipmentToUser(userID, typeID uint, notes string, purchasedDaysAgo int) (uint, error) {
	var result createdEntity
	err := post("/equipment/instances", map[string]interface{}{
		"user_id":           userID,
		"equipment_type_id": typeID,
		"notes":             notes,
		"purchase_date":     time.Now().AddDate(0, 0, -purchasedDaysAgo).Format("2006-01-02"),
	}, &result)
	return result.ID, err
}

func performMaintenance(instanceID uint, daysAgo int) error {
	return post(fmt.Sprintf("/equipment/instances/%d/maintenance", instanceID), map[string]string{
		"maintenance_date": time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02"),
	}, nil)
}

func createShopSpace(username, shopName string, length, width, height float64) (string, error) {
	var result createdShop
	err := post("/shops", map[string]interface{}{
		"username":  username,
		"shop_name": shopName,
		"length":    length,
		"width":     width,
		"height":    height,
	}, &result)
	return result.ShopID, err
}

func placeEquipment(shopID string, equipmentID uint, x, y float64) error {
	return post(fmt.Sprintf("/shops/%s/equipment", shopID), map[string]interface{}{
		"equipment_id": equipmentID,
		"x_coordinate": x,
		"y_coordinate": y,
		"z_coordinate": 0.0,
	}, nil)
}

func main() {
	if base := os.Getenv("API_BASE"); base != "" {
		apiBase = base
	}

	fmt.Println("Seeding demo data against", apiBase)

	john, err := registerUser("jsmith", "John Smith", "john.smith@example.com", "password123")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mary, err := registerUser("mjones", "Mary Jones", "mary.jones@example.com", "password456")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	bob, err := registerUser("bwilson", "Bob Wilson", "bob.wilson@example.com", "password789")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Created 3 users")

	catalog := []error{
		addEquipmentType("Table Saw", `10" cabinet saw with 3 HP motor, 52" T-Glide fence, and SawStop safety brake.`, 33.00, 34.00, 85.25, 30, "#f99", "SawStop", "PCS31230-TGP252", "Sawstop Tablesaw.jpeg"),
		addEquipmentType("Band Saw", `15" bandsaw with 3 HP motor and 14" resaw capacity.`, 34.38, 80.25, 30.25, 30, "#9f9", "Powermatic", "PM1500", "Powermatic band Saw.jpeg"),
		addEquipmentType("Planer", `Portable 13" planer with fan-assisted chip ejection and two-speed gearbox (96/179 CPI).`, 22.00, 18.75, 22.00, 7, "#99f", "DeWALT", "DW735", "dewalt Planer.jpeg"),
		addEquipmentType("Belt/Disc Sander", "Combo sander with tilting belt and disc tables; dust port selector.", 36.00, 36.00, 36.00, 7, "#ff9", "Delta", "31-735", "Delta Combo Sander.jpeg"),
		addEquipmentType("CNC Router", `Heavy-duty 3-axis CNC router with 50" x 100" working area and 4 HP spindle.`, 71, 54, 155, 30, "#cc0", "MultiCam", "Classic C-103", "MultiCAM Classic.jpeg"),
		addEquipmentType("Drill Press", "16-speed drill press with 0.75 HP motor and tilting cast-iron table.", 20, 70, 28, 30, "#0cc", "DELTA", "18-900L", "Delta Drill Press.jpeg"),
		addEquipmentType("Jointer", `8" jointer with 72" tables, 2 HP motor, and straight-knife cutterhead.`, 25.625, 45.25, 70.875, 30, "#ccc", "JET", "JWJ-8CS", "jet jointer.jpeg"),
	}
	for _, err := range catalog {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	fmt.Println("Added 7 equipment types")

	eq1, err := addEquipmentToUser(john.ID, 2, "Primary bandsaw for resawing and curve cuts", 365)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	eq2, _ := addEquipmentToUser(john.ID, 3, "Thickness planer for milling rough stock", 180)
	eq3, _ := addEquipmentToUser(mary.ID, 1, `Primary cabinet table saw with 52" fence`, 730)
	eq4, _ := addEquipmentToUser(mary.ID, 4, "Combination belt/disc sander for edge sanding and cleanup", 200)
	eq5, _ := addEquipmentToUser(bob.ID, 2, "Large bandsaw set up for general shop use", 400)
	eq6, _ := addEquipmentToUser(bob.ID, 6, "Floor drill press for accurate hole drilling", 150)
	fmt.Println("Added equipment to users")

	if err := performMaintenance(eq1, 3); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := performMaintenance(eq3, 365); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	fmt.Println("Maintenance records added")

	shop1, err := createShopSpace(john.Username, "HomeShop", 500.0, 400.0, 300.0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	shop2, _ := createShopSpace(mary.Username, "MainFacility", 800.0, 600.0, 350.0)
	shop3, _ := createShopSpace(bob.Username, "FabShop", 700.0, 500.0, 320.0)
	fmt.Println("Created 3 shop spaces")

	placements := []error{
		placeEquipment(shop1, eq1, 50.0, 50.0),
		placeEquipment(shop1, eq2, 250.0, 50.0),
		placeEquipment(shop2, eq3, 100.0, 100.0),
		placeEquipment(shop2, eq4, 400.0, 150.0),
		placeEquipment(shop3, eq5, 150.0, 100.0),
		placeEquipment(shop3, eq6, 350.0, 150.0),
	}
	for _, err := range placements {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	fmt.Println("Equipment placed in shops")

	fmt.Println("Done")
}
