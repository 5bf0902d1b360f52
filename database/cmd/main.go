package main

import (
	"flag"
	"os"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configsdatabase"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı migrasyonlarını çalıştır")
	flag.Parse()

	configs.LoadEnv()
	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	if err := database.Initialize(configsdatabase.GetDB(), *migrateFlag); err != nil {
		configsdatabase.CloseDB()
		configslog.SyncLogger()
		os.Exit(1)
	}
}
