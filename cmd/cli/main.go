// Operator CLI for the storefront backend: register an admin account or add
// a product (images go through the image host first, like the admin page).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tonmoyth/landing-page-two/internal/backend"
	"github.com/tonmoyth/landing-page-two/internal/config"
	"github.com/tonmoyth/landing-page-two/internal/imghost"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("expected 'register' or 'add-product' subcommand")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	client := backend.NewClient(cfg.BackendURL)

	switch os.Args[1] {
	case "register":
		registerCmd := flag.NewFlagSet("register", flag.ExitOnError)
		username := registerCmd.String("username", "", "Username for the new account")
		password := registerCmd.String("password", "", "Password for the new account")
		registerCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			registerCmd.PrintDefaults()
			os.Exit(1)
		}
		register(client, *username, *password)
	case "add-product":
		addCmd := flag.NewFlagSet("add-product", flag.ExitOnError)
		username := addCmd.String("username", "", "Admin username")
		password := addCmd.String("password", "", "Admin password")
		name := addCmd.String("name", "", "Product name")
		price := addCmd.Float64("price", 0, "Product price")
		image := addCmd.String("image", "", "Path to the product picture")
		icon1 := addCmd.String("icon1", "", "Path to the first icon")
		icon2 := addCmd.String("icon2", "", "Path to the second icon")
		addCmd.Parse(os.Args[2:])
		if *name == "" || *price <= 0 || *image == "" || *icon1 == "" || *icon2 == "" {
			fmt.Println("name, a positive price and all three image paths are required")
			addCmd.PrintDefaults()
			os.Exit(1)
		}
		addProduct(cfg, client, *username, *password, *name, *price, *image, *icon1, *icon2)
	default:
		fmt.Println("expected 'register' or 'add-product' subcommand")
		os.Exit(1)
	}
}

func register(client *backend.Client, username, password string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, _, err := client.Anonymous().Register(ctx, backend.Credentials{Username: username, Password: password})
	if err != nil {
		log.Fatalf("Failed to register: %v", err)
	}
	msg := result.Message
	if msg == "" {
		msg = "registered"
	}
	fmt.Printf("User '%s': %s\n", username, msg)
}

func addProduct(cfg *config.Config, client *backend.Client, username, password, name string, price float64, imagePath, icon1Path, icon2Path string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uploader, err := imghost.NewUploader(cfg.ImgBBEndpoint, cfg.ImgBBKey)
	if err != nil {
		log.Fatalf("Image host not configured: %v", err)
	}

	var files []imghost.File
	for _, path := range []string{imagePath, icon1Path, icon2Path} {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", path, err)
		}
		prepared, err := imghost.Prepare(f, path)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to prepare %s: %v", path, err)
		}
		files = append(files, prepared)
	}

	urls, err := uploader.UploadAll(ctx, files...)
	if err != nil {
		log.Fatalf("Image upload failed: %v", err)
	}

	// /addProducts needs an authenticated backend session.
	session := client.Anonymous()
	if username != "" {
		_, cookies, err := session.Login(ctx, backend.Credentials{Username: username, Password: password})
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		session = client.WithCookies(cookies)
	}

	product := backend.NewProduct{
		Name:         name,
		Price:        price,
		ProductImage: urls[0],
		Icons:        urls[1:],
	}
	if err := session.AddProduct(ctx, product); err != nil {
		log.Fatalf("Failed to add product: %v", err)
	}

	fmt.Printf("Product '%s' created successfully.\n", name)
}
