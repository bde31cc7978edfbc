// Package api provides the HTTP API of the task-list service.
//
// # Routes
//
//	POST   /auth/register  {username,password}  200 {token}       400, 409, 500
//	POST   /auth/login     {username,password}  200 {token}       400, 401, 404, 500
//	GET    /todos          bearer               200 [Task]        401, 500
//	POST   /todos          bearer {task}        200 Task          400, 401, 500
//	PUT    /todos/{id}     bearer {completed}   200 "Todo Updated" 400, 401, 404, 500
//	DELETE /todos/{id}     bearer               200 "Todo deleted" 400, 401, 404, 500
//
// Errors are {"error": "..."}. Updating or deleting a task that does not
// exist and one owned by someone else both answer 404.
//
// # Usage
//
//	guard := middleware.NewAuthMiddleware(codec)
//	server := api.NewServer(accounts, store, guard,
//		api.WithLogger(logger),
//		api.WithMetrics(metrics),
//		api.WithStaticDir("./public"),
//	)
//	http.ListenAndServe(":8001", server.Handler())
//
// With a static directory configured, paths matching no route are served
// from it; otherwise they answer a JSON 404.
package api
