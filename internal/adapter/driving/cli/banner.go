package cli

import (
	"fmt"

	"github.com/diillson/billing-dashboard-go/pkg/console"
	"github.com/diillson/billing-dashboard-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         ____  _ _ _ _               ____            _     _                         _
        | __ )(_) | (_)_ __   __ _  |  _ \  __ _ ___| |__ | |__   ___   __ _ _ __ __| |
        |  _ \| | | | | '_ \ / _' | | | | |/ _' / __| '_ \| '_ \ / _ \ / _' | '__/ _' |
        | |_) | | | | | | | | (_| | | |_| | (_| \__ \ | | | |_) | (_) | (_| | | | (_| |
        |____/|_|_|_|_|_| |_|\__, | |____/ \__,_|___/_| |_|_.__/ \___/ \__,_|_|  \__,_|
                             |___/
        `
	fmt.Println(console.BrightCyan(banner))

	fmt.Println(console.BrightMagenta(fmt.Sprintf("Billing Dashboard CLI (v%s)", version.FormatVersion())))
	if versionStr == "" || versionStr == "0.0.0-dev" {
		fmt.Println(console.BrightYellow("Development build: update checks are disabled"))
	}
}
