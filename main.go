package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"inventario/internal/config"
	intdb "inventario/internal/db"
	router "inventario/internal/http"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("Configuración inválida: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	// La base inalcanzable al arrancar es fatal; después de eso los errores
	// de store se devuelven como 500 al caller.
	db, err := config.OpenDB(env.DBDSN)
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}
	defer db.Close()
	log.Println("Conectado a MySQL")

	if err := intdb.EnsureSchema(db); err != nil {
		log.Fatalf("No se pudo preparar el esquema: %v", err)
	}

	r := router.NewRouter(db, env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Servidor escuchando en http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error al iniciar el servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Apagando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Apagado del servidor falló: %v", err)
	}

	log.Println("Servidor detenido correctamente.")
}
