package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/pettzin/ProjetoAstracode/internal/config"
)

// Usage example on the command line:
// > DBUSER=astra DBPWD=secret DBHOST=localhost:3306 go run ./cmd/migration -file=scripts/database.sql
func main() {
	cfg := config.Load()
	// No schema in the DSN: the script itself creates and selects the database.
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/", cfg.DBUser, cfg.DBPwd, cfg.DBHost)
	db := sqlx.MustOpen("mysql", dsn)
	defer db.Close()

	filePtr := flag.String("file", "scripts/database.sql", "the sql file to execute")
	flag.Parse()

	readFile, err := os.Open(*filePtr)
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			sql := builder.String()
			db.MustExec(sql)
			builder = strings.Builder{}
		}
	}
}
