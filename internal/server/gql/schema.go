package gql

// Schema is the wire contract. Argument bags are intentionally loose
// (nullable scalars); the resolvers normalize absent values themselves.
const Schema = `
  "The data the user needs to enter to register"
  input UserRegistrationInput {
    username: String!
    password: String!
    firstName: String!
    lastName: String!
    age: Int
  }
  type LoginPayload {
    token: String
    error: String
  }
  type User {
    firstName: String!
    lastName: String!
    age: Int
  }
  type Comment {
    error: String
    content: String
  }
  type Post {
    error: String
    comments: [Comment]
    content: String!
    user: User!
  }
  type Query {
    hello: String
    getMyPosts(token: String): [Post!]!
    getAllPosts: [Post!]!
    getPostComments(postId: String): [Comment!]!
  }
  type Mutation {
    createUser(userData: UserRegistrationInput): User
    loginUser(username: String, password: String): LoginPayload
    postCreate(token: String, content: String): String
    postUpdate(token: String, content: String, postId: String): Post
    postDelete(token: String, postId: String): String
    commentCreate(token: String, postId: String, content: String): String
  }
  schema {
    query: Query
    mutation: Mutation
  }
`
