package service

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/pettzin/ProjetoAstracode/internal/config"
	"github.com/pettzin/ProjetoAstracode/internal/logbook"
	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// db is a handle to the database.
var db *sqlx.DB

// insert is a prepared statement for creating a contact on the database.
var insert *sqlx.NamedStmt

// selectWhereId is a prepared statement for selecting contacts with a given id.
var selectWhereId *sqlx.Stmt

// deleteWhereId is a prepared statement for deleting a contact with a given id.
var deleteWhereId *sqlx.Stmt

// insertMensagem is a prepared statement for scheduling a message.
var insertMensagem *sqlx.NamedStmt

// actions is the append-only action log shared by all handlers.
var actions *logbook.Logbook

// CreateDatabase initializes and returns a database connection using the
// connection parameters from the configuration.
func CreateDatabase(cfg config.Config) *sql.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/contatos?parseTime=true",
		cfg.DBUser, cfg.DBPwd, cfg.DBHost)
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	return sqlDB
}

// SetupDatabaseWrapper initializes the sqlx database wrapper with the specified
// sql database and prepares all statements. The database argument can be a real
// database for production use or a mock database within unit tests. The
// returned handle can be shared with other components, e.g. the message
// scheduler.
func SetupDatabaseWrapper(sqlDB *sql.DB) *sqlx.DB {
	var err error
	db = sqlx.NewDb(sqlDB, "mysql")

	// Prepared statements offer a significant speed increase if executed many times.
	insert, err = db.PrepareNamed(`
		INSERT INTO contatos (nome, sobrenome, email, telefone, grupo, imagem, data_criacao)
		VALUES (:nome, :sobrenome, :email, :telefone, :grupo, :imagem, :data_criacao)
	`)
	if err != nil {
		log.Fatal(err)
	}
	selectWhereId, err = db.Preparex(`
		SELECT * FROM contatos WHERE id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	deleteWhereId, err = db.Preparex(`
		DELETE FROM contatos WHERE id = ?
	`)
	if err != nil {
		log.Fatal(err)
	}
	insertMensagem, err = db.PrepareNamed(`
		INSERT INTO mensagens (contato_id, telefone, texto, envia_em, status, criada_em)
		VALUES (:contato_id, :telefone, :texto, :envia_em, :status, :criada_em)
	`)
	if err != nil {
		log.Fatal(err)
	}
	return db
}

// SetupLogbook wires the action log used by the mutating endpoints and the
// /logs routes.
func SetupLogbook(lb *logbook.Logbook) {
	actions = lb
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
// The browser front-end is served from another origin, so CORS stays fully
// open, matching the original deployment.
func SetupHttpRouter(cfg config.Config) *gin.Engine {
	var router *gin.Engine
	if cfg.GinLogging {
		router = gin.Default()
	} else {
		fmt.Println("Turning off HTTP request logging.")
		router = gin.New()
		router.Use(gin.Recovery())
	}
	router.Use(cors.Default())

	router.GET("/api/ping", ping)
	router.GET("/api/contatos", findContatos)
	router.POST("/api/insert", createContato)
	router.PUT("/api/update/:id", updateContato)
	router.DELETE("/api/delete/:id", deleteContato)
	router.GET("/api/grupos", findGrupos)
	router.GET("/api/groups", findGrupos)

	router.POST("/api/mensagens", createMensagem)
	router.GET("/api/mensagens", findMensagens)

	router.POST("/api/log", recordLog)
	router.GET("/logs", readLogs)
	router.GET("/logs/download", downloadLogs)
	return router
}

// ping allows clients and deployment scripts to check that the service is up.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/api/ping"
func ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// findContatos responds with the list of all contacts as JSON. The result
// order is unspecified; clients sort locally. An empty table yields an empty
// array, never an error, because clients replace their snapshot wholesale
// with whatever this endpoint returns.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/api/contatos"
func findContatos(c *gin.Context) {
	contacts := []model.Contact{}
	if err := db.Select(&contacts, "SELECT * FROM contatos"); err != nil {
		log.Panicln(err)
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// createContato inserts the contact specified in the request's JSON into the
// database. It responds with the full contact data including the newly
// assigned id.
//
// The fields nome and telefone are required and must not be blank. A blank or
// missing grupo is stored as the sentinel group. A missing data_criacao
// defaults to the time of insertion.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/insert --request "POST" --include --header "Content-Type: application/json" --data '{"nome": "Ana", "telefone": "(11) 99999-8888", "grupo": "amigos"}'
func createContato(c *gin.Context) {
	var newContact model.Contact
	if err := c.BindJSON(&newContact); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if isBlank(newContact.Nome) || isBlank(newContact.Telefone) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "the fields nome and telefone are required"})
		return
	}
	if isBlank(newContact.Grupo) {
		sentinel := model.GrupoTodos
		newContact.Grupo = &sentinel
	}
	if newContact.DataCriacao == nil {
		now := time.Now()
		newContact.DataCriacao = &now
	}

	result, err := insert.Exec(&newContact)
	if err != nil {
		log.Panicln(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.Panicln(err)
	}
	newContact.Id = id
	logAction("create", gin.H{"id": id, "nome": *newContact.Nome})
	c.IndentedJSON(http.StatusCreated, newContact)
}

// updateContato updates the contact whose ID value matches the id parameter of
// the request URL, updates the values specified in the JSON (and only those),
// and finally responds with the new version of the contact. Group membership
// changes arrive here as well: assigning a contact to a group or back to the
// sentinel group is a partial update of the grupo field.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/api/update/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"telefone": "(11) 98888-7777"}'
//	> curl http://localhost:8080/api/update/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"grupo": "todos"}'
func updateContato(c *gin.Context) {
	id := c.Param("id")
	_, errConv := strconv.Atoi(id)
	if errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return
	}

	var submitted model.Contact
	if errBind := c.BindJSON(&submitted); errBind != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if submitted.Nome != nil && isBlank(submitted.Nome) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "nome must not be blank"})
		return
	}
	if submitted.Telefone != nil && isBlank(submitted.Telefone) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "telefone must not be blank"})
		return
	}

	var args []interface{}
	sql := "UPDATE contatos SET "
	if submitted.Nome != nil {
		args = append(args, submitted.Nome)
		sql += "nome=?, "
	}
	if submitted.Sobrenome != nil {
		args = append(args, submitted.Sobrenome)
		sql += "sobrenome=?, "
	}
	if submitted.Email != nil {
		args = append(args, submitted.Email)
		sql += "email=?, "
	}
	if submitted.Telefone != nil {
		args = append(args, submitted.Telefone)
		sql += "telefone=?, "
	}
	if submitted.Grupo != nil {
		args = append(args, submitted.Grupo)
		sql += "grupo=?, "
	}
	if submitted.Imagem != nil {
		args = append(args, submitted.Imagem)
		sql += "imagem=?, "
	}

	// It only makes sense to continue if we have at least one value to update.
	if len(args) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "no values to be updated"})
		return
	}

	sql = sql[:len(sql)-2]
	sql += " WHERE id=?"
	args = append(args, id)
	result := db.MustExec(sql, args...)
	rowsAffected, errRows := result.RowsAffected()
	if errRows != nil {
		log.Panicln(errRows)
	}
	if rowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}

	// In the HTTP response, return the full contact after the update.
	var contacts []model.Contact
	errSelect := selectWhereId.Select(&contacts, id)
	if errSelect != nil {
		log.Panicln(errSelect)
	}
	if len(contacts) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	logAction("update", gin.H{"id": id})
	c.IndentedJSON(http.StatusOK, contacts[0])
}

// deleteContato deletes the contact whose ID value matches the id parameter of
// the request URL from the database. The delete is hard; there is no
// tombstoning.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/delete/56 --request "DELETE"
func deleteContato(c *gin.Context) {
	id := c.Param("id")
	_, errConv := strconv.Atoi(id)
	if errConv != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return
	}

	result, err := deleteWhereId.Exec(id)
	if err != nil {
		log.Panicln(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Panicln(err)
	}
	if rowsAffected == 1 {
		logAction("delete", gin.H{"id": id})
		c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
	} else {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	}
}

// findGrupos responds with the distinct group labels currently in use.
// Groups are not a stored entity: they are an emergent property of the grupo
// column, and the sentinel group is never included.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/api/grupos"
func findGrupos(c *gin.Context) {
	groups := []string{}
	err := db.Select(&groups, `
		SELECT DISTINCT grupo FROM contatos
		WHERE grupo IS NOT NULL AND grupo <> ?
		ORDER BY grupo
	`, model.GrupoTodos)
	if err != nil {
		log.Panicln(err)
	}
	c.IndentedJSON(http.StatusOK, groups)
}

// isBlank returns true if the string pointer is nil or points to a string
// consisting only of whitespace.
func isBlank(s *string) bool {
	if s == nil {
		return true
	}
	for _, r := range *s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// logAction records a mutation in the action log. The service works without a
// configured logbook, e.g. in unit tests that only exercise SQL behavior.
func logAction(action string, data any) {
	if actions == nil {
		return
	}
	if err := actions.Record(action, "system", data); err != nil {
		log.Println("could not record action log:", err)
	}
}
