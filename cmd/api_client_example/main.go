package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the widget server")
	city := flag.String("city", "London", "City to search for")
	toggle := flag.Bool("toggle", false, "Toggle units after the search")
	flag.Parse()

	fmt.Println("Weather Widget Client Example")
	fmt.Println("=============================")

	// The jar keeps the session cookie so the toggle applies to our search
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	fmt.Printf("\nSearching for %s...\n", *city)
	payload, _ := json.Marshal(map[string]string{"city": *city})
	if err := call(client, *baseURL+"/api/search", payload); err != nil {
		fmt.Printf("Error searching: %v\n", err)
		os.Exit(1)
	}

	if *toggle {
		fmt.Println("\nToggling units...")
		if err := call(client, *baseURL+"/api/units", nil); err != nil {
			fmt.Printf("Error toggling units: %v\n", err)
			os.Exit(1)
		}
	}
}

// call posts body to url and pretty prints the returned widget
func call(client *http.Client, url string, body []byte) error {
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var widget map[string]interface{}
	if err := json.Unmarshal(data, &widget); err != nil {
		return fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, data)
	}

	prettyJSON, _ := json.MarshalIndent(widget, "", "  ")
	fmt.Println(string(prettyJSON))
	return nil
}
